package audio

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dhowden/tag"
)

// TagProber implements Prober with github.com/dhowden/tag, which understands
// ID3v1/v2, MP4, FLAC and OGG Vorbis comments.
type TagProber struct{}

// NewTagProber creates a new TagProber.
func NewTagProber() *TagProber {
	return &TagProber{}
}

// Probe reads the tags embedded in payload.
func (p *TagProber) Probe(payload []byte) (Metadata, error) {
	if len(payload) == 0 {
		return Metadata{}, fmt.Errorf("empty payload")
	}

	m, err := tag.ReadFrom(bytes.NewReader(payload))
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to read audio tags: %w", err)
	}

	artist := strings.TrimSpace(m.Artist())
	if albumArtist := strings.TrimSpace(m.AlbumArtist()); artist == "" && albumArtist != "" {
		artist = albumArtist
	}

	return Metadata{
		Title:    strings.TrimSpace(m.Title()),
		Artist:   artist,
		Album:    strings.TrimSpace(m.Album()),
		FileType: string(m.FileType()),
	}, nil
}
