package audio

// Metadata holds the descriptive tags found inside an audio payload.
type Metadata struct {
	Title    string
	Artist   string
	Album    string
	FileType string // e.g. "MP3", "FLAC", "OGG"
}

// Prober extracts metadata from raw audio bytes.
type Prober interface {
	// Probe reads embedded tags from payload. Payloads without recognisable
	// tags return an error and a zero Metadata.
	Probe(payload []byte) (Metadata, error)
}
