package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/starford/keyscan/internal/apperr"
	"github.com/starford/keyscan/internal/keywords"
	"github.com/starford/keyscan/internal/models"
	"github.com/starford/keyscan/internal/report"
	"github.com/starford/keyscan/internal/scanner"
	"github.com/starford/keyscan/internal/sse"
)

// Handler holds API route handlers.
type Handler struct {
	scanner *scanner.Scanner
	exclude string
}

// NewHandler creates a new Handler.
func NewHandler(sc *scanner.Scanner, exclude string) *Handler {
	return &Handler{scanner: sc, exclude: exclude}
}

// scanRequest builds a ScanRequest from the query string. ok is false when a
// response has already been written.
func (h *Handler) scanRequest(w http.ResponseWriter, r *http.Request) (models.ScanRequest, bool) {
	q := r.URL.Query()
	raw := q.Get("keywords")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "query parameter 'keywords' is required")
		return models.ScanRequest{}, false
	}
	return models.ScanRequest{
		Root:     q.Get("path"),
		Keywords: keywords.Parse(raw),
		Exclude:  h.exclude,
	}, true
}

// writeScanError maps scan failures to status codes.
func writeScanError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalidPath):
		writeError(w, http.StatusBadRequest, "invalid path")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		slog.Error("scan failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// Search handles GET /api/search?keywords=a,b&path=dir.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	req, ok := h.scanRequest(w, r)
	if !ok {
		return
	}
	c := report.NewCollector()
	sum, err := h.scanner.Scan(r.Context(), req, c)
	if err != nil {
		writeScanError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c.Result(sum))
}

// SearchStream handles GET /api/search/stream. Each match and file error is
// sent as a Server-Sent Event as soon as it is found, followed by a final
// "done" event carrying the summary.
func (h *Handler) SearchStream(w http.ResponseWriter, r *http.Request) {
	req, ok := h.scanRequest(w, r)
	if !ok {
		return
	}
	stream, err := sse.NewStream(w)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	sum, err := h.scanner.Scan(r.Context(), req, streamSink{stream})
	if err != nil {
		// Headers are gone; report the failure in-band.
		if r.Context().Err() == nil {
			slog.Warn("stream scan failed", slog.String("error", err.Error()))
			_ = stream.Send(report.EventFailed, ErrorResponse{Error: err.Error()})
		}
		return
	}
	_ = stream.Send(report.EventDone, sum)
}

// Files handles GET /api/files?path=dir and lists every file a scan would
// open.
func (h *Handler) Files(w http.ResponseWriter, r *http.Request) {
	files, err := h.scanner.EligibleFiles(r.Context(), r.URL.Query().Get("path"), h.exclude)
	if err != nil {
		writeScanError(w, err)
		return
	}
	if files == nil {
		files = []string{}
	}
	writeJSON(w, http.StatusOK, FilesResponse{Files: files})
}

type streamSink struct {
	s *sse.Stream
}

func (s streamSink) Match(m models.Match) error {
	return s.s.Send(report.EventMatch, m)
}

func (s streamSink) FileError(e models.FileError) error {
	return s.s.Send(report.EventError, report.ErrorEvent(e).Error)
}
