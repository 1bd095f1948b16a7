package storage

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
)

var (
	ErrBlobNotFound     = errors.New("blob not found")
	ErrEmptyBlob        = errors.New("blob payload is empty")
	ErrCapacityExceeded = errors.New("blob storage capacity exceeded")
)

// Limits bounds what a BlobStore accepts. Zero means unlimited.
type Limits struct {
	MaxBlobSize  int64
	MaxTotalSize int64
}

// BlobStore keeps audio payloads in memory, keyed by track ID.
//
// BlobStore does no locking of its own: the owning repository serialises every
// call together with its metadata updates, so both collections change as one step.
type BlobStore struct {
	blobs  map[string][]byte
	total  int64
	limits Limits
}

// NewBlobStore creates an empty BlobStore with the given limits.
func NewBlobStore(limits Limits) *BlobStore {
	return &BlobStore{
		blobs:  make(map[string][]byte),
		limits: limits,
	}
}

// CheckFits reports whether a payload of n bytes can be stored without
// breaking the configured limits.
func (s *BlobStore) CheckFits(n int64) error {
	if n <= 0 {
		return ErrEmptyBlob
	}
	if s.limits.MaxBlobSize > 0 && n > s.limits.MaxBlobSize {
		return fmt.Errorf("%w: blob of %s exceeds per-blob limit %s", ErrCapacityExceeded,
			humanize.IBytes(uint64(n)), humanize.IBytes(uint64(s.limits.MaxBlobSize)))
	}
	if s.limits.MaxTotalSize > 0 && s.total+n > s.limits.MaxTotalSize {
		return fmt.Errorf("%w: %s in use, %s requested, limit %s", ErrCapacityExceeded,
			humanize.IBytes(uint64(s.total)), humanize.IBytes(uint64(n)), humanize.IBytes(uint64(s.limits.MaxTotalSize)))
	}
	return nil
}

// Put stores a copy of data under id, replacing any previous blob.
func (s *BlobStore) Put(id string, data []byte) error {
	prev, replacing := s.blobs[id]
	if replacing {
		s.total -= int64(len(prev))
	}
	if err := s.CheckFits(int64(len(data))); err != nil {
		if replacing {
			s.total += int64(len(prev))
		}
		return err
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	s.blobs[id] = buf
	s.total += int64(len(buf))
	return nil
}

// Get returns the blob stored under id.
// The returned slice is shared with the store and must not be modified.
func (s *BlobStore) Get(id string) ([]byte, error) {
	b, ok := s.blobs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBlobNotFound, id)
	}
	return b, nil
}

// Has reports whether a blob is stored under id.
func (s *BlobStore) Has(id string) bool {
	_, ok := s.blobs[id]
	return ok
}

// Delete removes the blob under id and reports whether one existed.
func (s *BlobStore) Delete(id string) bool {
	b, ok := s.blobs[id]
	if !ok {
		return false
	}
	delete(s.blobs, id)
	s.total -= int64(len(b))
	return true
}

// Len returns the number of stored blobs.
func (s *BlobStore) Len() int {
	return len(s.blobs)
}

// Size returns the number of bytes currently held.
func (s *BlobStore) Size() int64 {
	return s.total
}

// Limits returns the configured limits.
func (s *BlobStore) Limits() Limits {
	return s.limits
}
