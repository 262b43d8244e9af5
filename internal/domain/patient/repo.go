package patient

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no patient matches the given id or code
// within the hospital.
var ErrNotFound = errors.New("patient not found")

// Repository is the persistence boundary for the patient master.
type Repository interface {
	List(ctx context.Context, hospitalID int) ([]Summary, error)
	GetByID(ctx context.Context, id, hospitalID int) (*Patient, error)
	GetByCode(ctx context.Context, code string, hospitalID int) (*Patient, error)
	Create(ctx context.Context, p *Patient) (int, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id, hospitalID int, code string) error

	// NextSequence hands out the next registration number for the
	// hospital's fiscal year; codes are formatted from it.
	NextSequence(ctx context.Context, hospitalID int, fiscalYear string) (int, error)
}
