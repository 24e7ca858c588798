package api

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/materials-advisor/advisor/internal/core/domain"
)

// WrapRequest is the body of POST /api/wrap.
type WrapRequest struct {
	Wrap     domain.WrapContext `json:"wrap"`
	Action   string             `json:"action" validate:"omitempty,max=64"`
	Messages []MessageParams    `json:"messages" validate:"omitempty,max=200,dive"`
}

// MessageParams is one conversation turn from the client.
type MessageParams struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"max=20000"`
}

// WrapResponse is the body of a successful POST /api/wrap.
type WrapResponse struct {
	Text string `json:"text"`
}

// HealthResponse is the body of GET /check/healthy.
type HealthResponse struct {
	Result    string `json:"result"`
	Documents int    `json:"documents"`
	Corpus    string `json:"corpus"`
}

// ToDomain converts the request into an advice request.
func (r *WrapRequest) ToDomain() domain.AdviceRequest {
	messages := make([]domain.Message, len(r.Messages))
	for i, m := range r.Messages {
		messages[i] = domain.Message{Role: m.Role, Content: m.Content}
	}
	return domain.AdviceRequest{
		Wrap:     r.Wrap,
		Action:   domain.Action(r.Action),
		Messages: messages,
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the request and returns failing fields keyed by JSON path,
// or nil when the request is valid.
func (r *WrapRequest) Validate() map[string]string {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return map[string]string{"request": err.Error()}
	}

	fields := make(map[string]string, len(errs))
	for _, e := range errs {
		fields[fieldPath(e.Namespace())] = e.Tag()
	}
	return fields
}

// fieldPath drops the struct name from a validator namespace,
// so "WrapRequest.messages[0].role" becomes "messages[0].role".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
