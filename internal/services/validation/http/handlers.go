// Package http provides http transport for validation
package http

import (
	stdhttp "net/http"

	"transcriba/internal/modkit/httpkit"
	"transcriba/internal/services/validation/domain"
	svc "transcriba/internal/services/validation/service"
)

// Register mounts validation endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// validate a CSV without persisting anything
	httpkit.PostJSON[domain.CheckInput](r, "/check", h.check)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /validation/check Validation validationCheck
// @Summary Validate a transcription CSV
// @Tags Validation
// @Accept json
// @Produce json
// @Param payload body domain.CheckInput true "CSV content and optional participants"
// @Success 200 {object} domain.CheckResult "ok"
// @Router /validation/check [post]
func (h *handlers) check(r *stdhttp.Request, in domain.CheckInput) (any, error) {
	return h.svc.Check(r.Context(), in)
}
