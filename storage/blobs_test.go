package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlobStorePutGetDelete(t *testing.T) {
	t.Parallel()

	s := NewBlobStore(Limits{})
	require.NoError(t, s.Put("a", []byte("1234")))
	require.True(t, s.Has("a"))
	require.Equal(t, 1, s.Len())
	require.EqualValues(t, 4, s.Size())

	b, err := s.Get("a")
	require.NoError(t, err)
	require.Equal(t, []byte("1234"), b)

	require.True(t, s.Delete("a"))
	require.False(t, s.Delete("a"))
	require.Zero(t, s.Len())
	require.Zero(t, s.Size())

	_, err = s.Get("a")
	require.ErrorIs(t, err, ErrBlobNotFound)
}

func TestBlobStoreCopiesPayload(t *testing.T) {
	t.Parallel()

	s := NewBlobStore(Limits{})
	data := []byte("abcd")
	require.NoError(t, s.Put("a", data))
	data[0] = 'z'

	b, err := s.Get("a")
	require.NoError(t, err)
	require.Equal(t, []byte("abcd"), b)
}

func TestBlobStoreRejectsEmpty(t *testing.T) {
	t.Parallel()

	s := NewBlobStore(Limits{})
	require.ErrorIs(t, s.Put("a", nil), ErrEmptyBlob)
	require.False(t, s.Has("a"))
}

func TestBlobStoreLimits(t *testing.T) {
	t.Parallel()

	s := NewBlobStore(Limits{MaxBlobSize: 4, MaxTotalSize: 6})
	require.ErrorIs(t, s.Put("big", []byte("12345")), ErrCapacityExceeded)
	require.NoError(t, s.Put("a", []byte("1234")))
	require.ErrorIs(t, s.Put("b", []byte("123")), ErrCapacityExceeded)
	require.NoError(t, s.Put("b", []byte("12")))
	require.EqualValues(t, 6, s.Size())

	// replacing a blob only counts the difference
	require.NoError(t, s.Put("a", []byte("1")))
	require.EqualValues(t, 3, s.Size())
}

func TestBlobStoreFailedReplaceKeepsAccounting(t *testing.T) {
	t.Parallel()

	s := NewBlobStore(Limits{MaxBlobSize: 4})
	require.NoError(t, s.Put("a", []byte("1234")))
	require.ErrorIs(t, s.Put("a", []byte("123456")), ErrCapacityExceeded)
	require.EqualValues(t, 4, s.Size())

	b, err := s.Get("a")
	require.NoError(t, err)
	require.Equal(t, []byte("1234"), b)
}
