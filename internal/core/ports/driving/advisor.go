package driving

import (
	"context"

	"github.com/materials-advisor/advisor/internal/core/domain"
)

// AdvisorService answers advice requests.
type AdvisorService interface {
	// Respond retrieves references for the last user message, assembles the
	// prompt and returns the model's reply.
	Respond(ctx context.Context, req domain.AdviceRequest) (*domain.AdviceReply, error)
}
