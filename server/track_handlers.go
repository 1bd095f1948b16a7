package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"audiolist/config"
	"audiolist/core/audio"
	"audiolist/core/events"
	"audiolist/logger"
	"audiolist/repository"
	"audiolist/storage"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/mux"
)

// multipartMemory is how much of a multipart body is held in memory before
// the rest spills to temporary files.
const multipartMemory = 32 << 20

// Publisher receives playlist change notifications.
type Publisher interface {
	Publish(ev events.Event)
}

// APIHandler serves the track API.
type APIHandler struct {
	trackRepo repository.TrackRepository
	prober    audio.Prober
	events    Publisher
	cfg       *config.Config
}

// NewAPIHandler creates a new APIHandler. prober and publisher may be nil.
func NewAPIHandler(trackRepo repository.TrackRepository, prober audio.Prober, publisher Publisher, cfg *config.Config) *APIHandler {
	return &APIHandler{trackRepo: trackRepo, prober: prober, events: publisher, cfg: cfg}
}

// GetTracksHandler returns every track sorted by timestamp.
func (h *APIHandler) GetTracksHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.trackRepo.List())
}

// UploadTrackHandler stores an uploaded audio file.
// Expected multipart form fields:
// - file: the audio payload
// - name: display name (optional, defaults to the file name)
func (h *APIHandler) UploadTrackHandler(w http.ResponseWriter, r *http.Request) {
	if h.cfg.MaxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadSize)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if isBodyTooLarge(err) {
			logger.Warn("Upload rejected, body too large", logger.Bytes("limit", h.cfg.MaxUploadSize))
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Upload exceeds the %s limit", humanize.IBytes(uint64(h.cfg.MaxUploadSize))))
			return
		}
		logger.Warn("Failed to parse upload form", logger.ErrorField(err))
		writeError(w, http.StatusBadRequest, "Invalid POST request. Must upload a file via 'file' field.")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid POST request. Must upload a file via 'file' field.")
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		logger.Error("Failed to read uploaded file", logger.String("filename", header.Filename), logger.ErrorField(err))
		writeError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	mimetype := resolveMimetype(header)
	if h.cfg.AudioOnly && mimetype != "" && !audio.IsAudioMimetype(mimetype) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unsupported content type %q, expected audio", mimetype))
		return
	}

	in := repository.AddTrackInput{
		Name:     r.FormValue("name"),
		Filename: header.Filename,
		Payload:  payload,
		Mimetype: mimetype,
	}
	if h.prober != nil && len(payload) > 0 {
		if md, err := h.prober.Probe(payload); err == nil {
			in.Artist, in.Album = md.Artist, md.Album
		} else {
			logger.Debug("No audio tags found", logger.String("filename", header.Filename), logger.ErrorField(err))
		}
	}

	track, err := h.trackRepo.Add(in)
	switch {
	case errors.Is(err, repository.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Missing file or track name")
		return
	case errors.Is(err, storage.ErrCapacityExceeded):
		logger.Warn("Upload rejected, storage full", logger.ErrorField(err))
		writeError(w, http.StatusInsufficientStorage, "Server storage is full")
		return
	case err != nil:
		logger.Error("Failed to add track", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to store track")
		return
	}

	logger.Info("Track uploaded",
		logger.String("id", track.ID),
		logger.String("name", track.Name),
		logger.String("mimetype", track.Mimetype),
		logger.Bytes("size", track.Size),
	)
	h.publish(events.Event{Type: events.TrackAdded, Track: track})

	writeJSON(w, http.StatusCreated, map[string]interface{}{"status": "success", "track": track})
}

// StreamHandler serves the stored bytes of a local track inline.
// URL: /api/stream/{id}
func (h *APIHandler) StreamHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	payload, mimetype, err := h.trackRepo.Stream(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "File not found in server storage")
			return
		}
		logger.Error("Failed to stream track", logger.String("id", id), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to stream track")
		return
	}

	w.Header().Set("Content-Type", mimetype)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": id}))
	// ServeContent handles Range and HEAD so browsers can seek.
	http.ServeContent(w, r, id, time.Time{}, bytes.NewReader(payload))
}

// DeleteTrackHandler removes a track and its stored bytes.
// URL: /api/tracks/{id}
func (h *APIHandler) DeleteTrackHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	track, err := h.trackRepo.Get(id)
	if err == nil {
		err = h.trackRepo.Delete(id)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Track not found")
			return
		}
		logger.Error("Failed to delete track", logger.String("id", id), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to delete track")
		return
	}

	logger.Info("Track deleted", logger.String("id", id))
	h.publish(events.Event{Type: events.TrackDeleted, Track: track})

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": fmt.Sprintf("Track %s deleted.", id),
	})
}

func (h *APIHandler) publish(ev events.Event) {
	if h.events != nil {
		h.events.Publish(ev)
	}
}

// resolveMimetype prefers the part's declared content type and falls back to
// the file extension when the client sent none or a generic one.
func resolveMimetype(header *multipart.FileHeader) string {
	ct := strings.TrimSpace(header.Header.Get("Content-Type"))
	if ct != "" && ct != "application/octet-stream" {
		return ct
	}
	return audio.MimetypeFromFilename(header.Filename)
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
