package audio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// id3v1 builds a payload ending in a 128 byte ID3v1 tag.
func id3v1(title, artist, album string) []byte {
	field := func(s string, n int) []byte {
		b := bytes.Repeat([]byte{' '}, n)
		copy(b, s)
		return b
	}
	var buf bytes.Buffer
	buf.Write(make([]byte, 64)) // stand-in for audio frames
	buf.WriteString("TAG")
	buf.Write(field(title, 30))
	buf.Write(field(artist, 30))
	buf.Write(field(album, 30))
	buf.WriteString("2024")
	buf.Write(field("", 30))
	buf.WriteByte(0)
	return buf.Bytes()
}

func TestTagProberID3v1(t *testing.T) {
	t.Parallel()

	md, err := NewTagProber().Probe(id3v1("Song A", "Some Artist", "Some Album"))
	require.NoError(t, err)
	require.Equal(t, "Song A", md.Title)
	require.Equal(t, "Some Artist", md.Artist)
	require.Equal(t, "Some Album", md.Album)
}

func TestTagProberNoTags(t *testing.T) {
	t.Parallel()

	_, err := NewTagProber().Probe([]byte("definitely not an audio file with tags"))
	require.Error(t, err)

	_, err = NewTagProber().Probe(nil)
	require.Error(t, err)
}

func TestMimetypeFromFilename(t *testing.T) {
	t.Parallel()

	require.Equal(t, "audio/mpeg", MimetypeFromFilename("a.MP3"))
	require.Equal(t, "audio/ogg", MimetypeFromFilename("dir/b.opus"))
	require.Equal(t, "audio/flac", MimetypeFromFilename("c.flac"))
	require.Equal(t, "", MimetypeFromFilename("noext"))
}

func TestIsAudioMimetype(t *testing.T) {
	t.Parallel()

	require.True(t, IsAudioMimetype("audio/mpeg"))
	require.True(t, IsAudioMimetype("audio/ogg; codecs=opus"))
	require.True(t, IsAudioMimetype("video/webm"))
	require.False(t, IsAudioMimetype("image/png"))
	require.False(t, IsAudioMimetype("text/html; charset=utf-8"))
	require.False(t, IsAudioMimetype(""))
}
