package payment

import "context"

// Status is the normalized payment outcome reported by a gateway.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Gateway defines the contract with the external checkout collaborator.
// Checkout completes on the provider's own surface (cross-origin), so the
// only signals available are CheckStatus polling and user self-report.
type Gateway interface {
	// CreateIntent registers a payment and returns the URL the user is
	// redirected to.
	CreateIntent(ctx context.Context, intentId, identity, planName string, amount int64) (string, error)
	CheckStatus(ctx context.Context, intentId string) (Status, error)
}
