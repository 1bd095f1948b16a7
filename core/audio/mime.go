package audio

import (
	"mime"
	"path/filepath"
	"strings"
)

// MimetypeFromFilename guesses an audio content type from a file extension.
// It returns "" when the extension is unknown.
func MimetypeFromFilename(filename string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	switch ext {
	case "mp3":
		return "audio/mpeg"
	case "flac":
		return "audio/flac"
	case "aac":
		return "audio/aac"
	case "m4a", "m4b":
		return "audio/mp4"
	case "ogg", "oga", "opus":
		return "audio/ogg"
	case "wav":
		return "audio/wav"
	case "webm":
		return "audio/webm"
	case "wma":
		return "audio/x-ms-wma"
	case "":
		return ""
	}
	return mime.TypeByExtension("." + ext)
}

// IsAudioMimetype reports whether mimetype names an audio payload. A few
// containers that browsers label as video or octet-stream are accepted as well.
func IsAudioMimetype(mimetype string) bool {
	mt, _, err := mime.ParseMediaType(mimetype)
	if err != nil {
		return false
	}
	switch {
	case strings.HasPrefix(mt, "audio/"):
		return true
	case mt == "video/ogg", mt == "video/webm", mt == "application/ogg":
		return true
	}
	return false
}
