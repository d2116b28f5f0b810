// Package http provides http transport for transcripts
package http

import (
	stdhttp "net/http"

	"transcriba/internal/modkit/httpkit"
	"transcriba/internal/services/transcripts/domain"
	svc "transcriba/internal/services/transcripts/service"
)

// Register mounts transcript endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// validate and store a transcript
	httpkit.PostJSON[domain.UploadInput](r, "/upload", h.upload)

	// stored rows of one transcript
	httpkit.PostJSON[domain.SegmentsInput](r, "/segments", h.segments)

	// recent transcripts
	httpkit.PostJSON[domain.ListInput](r, "/list", h.list)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /transcripts/upload Transcripts transcriptsUpload
// @Summary Validate and store a transcription CSV
// @Tags Transcripts
// @Accept json
// @Produce json
// @Param payload body domain.UploadInput true "CSV content and metadata"
// @Success 200 {object} domain.UploadResult "ok"
// @Router /transcripts/upload [post]
func (h *handlers) upload(r *stdhttp.Request, in domain.UploadInput) (any, error) {
	return h.svc.Upload(r.Context(), in)
}

// swagger:route POST /transcripts/segments Transcripts transcriptsSegments
// @Summary Stored segments of a transcript
// @Tags Transcripts
// @Accept json
// @Produce json
// @Param payload body domain.SegmentsInput true "Transcript selector"
// @Success 200 {array} domain.Segment "ok"
// @Router /transcripts/segments [post]
func (h *handlers) segments(r *stdhttp.Request, in domain.SegmentsInput) (any, error) {
	return h.svc.Segments(r.Context(), in)
}

// swagger:route POST /transcripts/list Transcripts transcriptsList
// @Summary Recently stored transcripts
// @Tags Transcripts
// @Accept json
// @Produce json
// @Param payload body domain.ListInput true "Paging"
// @Success 200 {array} domain.Transcript "ok"
// @Router /transcripts/list [post]
func (h *handlers) list(r *stdhttp.Request, in domain.ListInput) (any, error) {
	return h.svc.List(r.Context(), in)
}
