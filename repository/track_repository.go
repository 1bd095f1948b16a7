package repository

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"audiolist/model"
	"audiolist/storage"

	"github.com/google/uuid"
)

var (
	// ErrInvalidInput is returned for malformed or missing upload data.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when the referenced track does not exist.
	ErrNotFound = errors.New("track not found")
)

// AddTrackInput carries an upload into the repository.
type AddTrackInput struct {
	Name     string // explicit display name, optional
	Filename string // uploaded file name, used when Name is empty
	Payload  []byte
	Mimetype string
	Artist   string
	Album    string
}

// TrackRepository defines the interface for track data operations.
type TrackRepository interface {
	List() []*model.Track
	Get(id string) (*model.Track, error)
	Add(in AddTrackInput) (*model.Track, error)
	Stream(id string) ([]byte, string, error)
	Delete(id string) error
	Seed(tracks []model.ExternalTrack) int
}

// memoryTrackRepository keeps track metadata and audio blobs in process memory.
// A single RWMutex guards both collections so that a track and its blob are
// always created and removed together.
type memoryTrackRepository struct {
	mu     sync.RWMutex
	tracks []*model.Track
	blobs  *storage.BlobStore
	newID  func() string
}

// NewMemoryTrackRepository creates a new in-memory TrackRepository backed by blobs.
func NewMemoryTrackRepository(blobs *storage.BlobStore) TrackRepository {
	if blobs == nil {
		blobs = storage.NewBlobStore(storage.Limits{})
	}
	return &memoryTrackRepository{
		blobs: blobs,
		newID: func() string { return uuid.New().String() },
	}
}

// List returns copies of all tracks ordered by ascending timestamp.
// Tracks sharing a timestamp keep their insertion order.
func (r *memoryTrackRepository) List() []*model.Track {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Track, 0, len(r.tracks))
	for _, t := range r.tracks {
		out = append(out, t.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})
	return out
}

// Get returns a copy of the track with the given ID.
func (r *memoryTrackRepository) Get(id string) (*model.Track, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		return r.tracks[i].Clone(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Add stores an uploaded payload and appends its track to the playlist.
func (r *memoryTrackRepository) Add(in AddTrackInput) (*model.Track, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = strings.TrimSpace(in.Filename)
	}
	if len(in.Payload) == 0 {
		return nil, fmt.Errorf("%w: missing file payload", ErrInvalidInput)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: missing track name", ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.uniqueID()
	if err := r.blobs.Put(id, in.Payload); err != nil {
		return nil, fmt.Errorf("failed to store payload for track %q: %w", name, err)
	}

	track := &model.Track{
		ID:        id,
		Name:      name,
		URL:       model.StreamURL(id),
		IsLocal:   true,
		Timestamp: len(r.tracks) + 1,
		Mimetype:  in.Mimetype,
		Artist:    in.Artist,
		Album:     in.Album,
		Size:      int64(len(in.Payload)),
	}
	r.tracks = append(r.tracks, track)
	return track.Clone(), nil
}

// Stream returns the stored bytes for id and the content type to present.
// A blob whose metadata has gone missing is still served with the default type.
// The returned slice must not be modified.
func (r *memoryTrackRepository) Stream(id string) ([]byte, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payload, err := r.blobs.Get(id)
	if err != nil {
		if errors.Is(err, storage.ErrBlobNotFound) {
			return nil, "", fmt.Errorf("%w: no stored audio for %s", ErrNotFound, id)
		}
		return nil, "", err
	}

	mimetype := model.DefaultMimetype
	if i := r.indexOf(id); i >= 0 && r.tracks[i].Mimetype != "" {
		mimetype = r.tracks[i].Mimetype
	}
	return payload, mimetype, nil
}

// Delete removes the track and its blob. Nothing is touched when the track is unknown.
func (r *memoryTrackRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	r.tracks = append(r.tracks[:i], r.tracks[i+1:]...)
	r.blobs.Delete(id)
	return nil
}

// Seed appends externally hosted tracks using the same ID and timestamp policy as Add.
// Entries without a name or URL are skipped.
func (r *memoryTrackRepository) Seed(tracks []model.ExternalTrack) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	added := 0
	for _, ext := range tracks {
		if strings.TrimSpace(ext.Name) == "" || strings.TrimSpace(ext.URL) == "" {
			continue
		}
		r.tracks = append(r.tracks, &model.Track{
			ID:        r.uniqueID(),
			Name:      ext.Name,
			URL:       ext.URL,
			IsLocal:   false,
			Timestamp: len(r.tracks) + 1,
		})
		added++
	}
	return added
}

// indexOf must be called with the lock held.
func (r *memoryTrackRepository) indexOf(id string) int {
	for i, t := range r.tracks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// uniqueID must be called with the write lock held.
func (r *memoryTrackRepository) uniqueID() string {
	for {
		id := r.newID()
		if r.indexOf(id) < 0 && !r.blobs.Has(id) {
			return id
		}
	}
}
