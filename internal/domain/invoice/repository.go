package invoice

import "context"

// Repository provides access to invoice storage
type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	Get(ctx context.Context, id string) (*Invoice, error)
	Update(ctx context.Context, inv *Invoice) error
	List(ctx context.Context, customerID string) ([]*Invoice, error)
}
