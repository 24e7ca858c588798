package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/materials-advisor/advisor/internal/core/ports/driving"
)

// WrapHandler serves advisor turns.
type WrapHandler struct {
	advisor driving.AdvisorService
}

// NewWrapHandler creates a handler backed by advisor.
func NewWrapHandler(advisor driving.AdvisorService) *WrapHandler {
	return &WrapHandler{advisor: advisor}
}

// HandleWrap answers POST /api/wrap.
func (h *WrapHandler) HandleWrap(c *fiber.Ctx) error {
	var req WrapRequest
	if err := c.App().Config().JSONDecoder(c.Body(), &req); err != nil {
		return ErrBadRequest(err.Error())
	}

	if errs := req.Validate(); len(errs) > 0 {
		return NewValidationError(errs)
	}

	if h.advisor == nil {
		return ErrServer("advisor not configured")
	}

	reply, err := h.advisor.Respond(c.UserContext(), req.ToDomain())
	if err != nil {
		return FromDomain(err)
	}

	return c.JSON(WrapResponse{Text: reply.Text})
}

// CheckHandler serves health checks.
type CheckHandler struct {
	retrieval driving.RetrievalService
}

// NewCheckHandler creates a health handler. retrieval may be nil, in which
// case the corpus is reported empty.
func NewCheckHandler(retrieval driving.RetrievalService) *CheckHandler {
	return &CheckHandler{retrieval: retrieval}
}

// HandleHealthy answers GET /check/healthy.
func (h *CheckHandler) HandleHealthy(c *fiber.Ctx) error {
	resp := HealthResponse{Result: "ok", Corpus: "empty"}
	if h.retrieval != nil {
		load := h.retrieval.Corpus(c.UserContext())
		resp.Documents = len(load.Documents)
		resp.Corpus = load.State.String()
	}
	return c.JSON(resp)
}
