package domain

import "fmt"

const (
	DefaultMaxLength = 200
	DefaultMinLength = 50
)

// SummaryRequest bounds the length of a generated summary in words.
type SummaryRequest struct {
	MaxLength int
	MinLength int
}

func DefaultSummaryRequest() SummaryRequest {
	return SummaryRequest{
		MaxLength: DefaultMaxLength,
		MinLength: DefaultMinLength,
	}
}

// Validate checks that both bounds are positive and MinLength <= MaxLength.
func (r SummaryRequest) Validate() error {
	if r.MaxLength <= 0 {
		return &ValidationError{Field: "maxLength", Message: "must be positive"}
	}
	if r.MinLength <= 0 {
		return &ValidationError{Field: "minLength", Message: "must be positive"}
	}
	if r.MinLength > r.MaxLength {
		return &ValidationError{
			Field:   "minLength",
			Message: fmt.Sprintf("must not exceed maxLength (%d > %d)", r.MinLength, r.MaxLength),
		}
	}

	return nil
}

type UserSettings struct {
	UserID    int64
	MaxLength int64
	MinLength int64
}

// SummaryRequest converts stored settings into request bounds. MinLength is
// lowered to MaxLength when a short max preset was picked.
func (us UserSettings) SummaryRequest() SummaryRequest {
	req := SummaryRequest{
		MaxLength: int(us.MaxLength),
		MinLength: int(us.MinLength),
	}
	if req.MaxLength <= 0 {
		req.MaxLength = DefaultMaxLength
	}
	if req.MinLength <= 0 {
		req.MinLength = DefaultMinLength
	}
	req.MinLength = min(req.MinLength, req.MaxLength)

	return req
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}
