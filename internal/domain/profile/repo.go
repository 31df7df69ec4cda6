package profile

import "context"

// Repository reads and upserts the doctor profile singleton. Get never reports
// absence: when no row has been saved yet it returns a zero-valued profile with
// id 1.
type Repository interface {
	Get(ctx context.Context) (*Doctor, error)
	Upsert(ctx context.Context, d *Doctor) error
}
