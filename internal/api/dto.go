package api

import "github.com/starford/keyscan/internal/report"

// SearchResponse is the body of GET /api/search.
type SearchResponse = report.Result

// FilesResponse is the body of GET /api/files.
type FilesResponse struct {
	Files []string `json:"files"`
}
