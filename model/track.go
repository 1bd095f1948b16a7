package model

// StreamPathPrefix is the route prefix under which locally stored tracks are served.
const StreamPathPrefix = "/api/stream/"

// DefaultMimetype is presented when a stored track carries no content type.
const DefaultMimetype = "audio/mpeg"

// Track represents one playlist entry.
type Track struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	URL       string `json:"url"`                // /api/stream/{id} for local tracks, external URL otherwise
	IsLocal   bool   `json:"isLocal"`            // true iff the bytes are held in blob storage
	Timestamp int    `json:"timestamp"`          // insertion-order key, not wall-clock time
	Mimetype  string `json:"mimetype,omitempty"` // local tracks only
	Artist    string `json:"artist,omitempty"`
	Album     string `json:"album,omitempty"`
	Size      int64  `json:"size,omitempty"` // byte length of the stored blob
}

// Clone returns a copy that callers may modify freely.
func (t *Track) Clone() *Track {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// StreamURL builds the server-relative streaming path for a track ID.
func StreamURL(id string) string {
	return StreamPathPrefix + id
}

// ExternalTrack describes a track whose audio lives outside this process.
type ExternalTrack struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// DemoTracks are the externally hosted tracks offered for seeding.
var DemoTracks = []ExternalTrack{
	{Name: "Demo Track 1 (Server)", URL: "https://upload.wikimedia.org/wikipedia/commons/e/e0/Cacophony_sound_fx_01.ogg"},
	{Name: "Demo Track 2 (Server)", URL: "https://upload.wikimedia.org/wikipedia/commons/0/05/Cacophony_sound_fx_02.ogg"},
}
