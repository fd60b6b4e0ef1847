package model

import "context"

// EmailGateway dispatches transactional mail. A failure carries no
// retryable/non-retryable distinction; callers treat every failure as fatal
// to the current attempt.
type EmailGateway interface {
	SendActivation(ctx context.Context, email, token string) error
	SendPasswordReset(ctx context.Context, email, token string) error
}
