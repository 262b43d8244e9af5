package refdata

import "context"

// Repository is the persistence boundary for reference data.
type Repository interface {
	ListByType(ctx context.Context, refType string) ([]RefValue, error)
}
