package refdata

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RepoPG is the pgx implementation of Repository.
type RepoPG struct {
	pool *pgxpool.Pool
}

func NewRepoPG(pool *pgxpool.Pool) *RepoPG {
	return &RepoPG{pool: pool}
}

func (r *RepoPG) ListByType(ctx context.Context, refType string) ([]RefValue, error) {
	const q = `
SELECT id, ref_type, item_id, name, active
FROM ref_value
WHERE ref_type = $1 AND active
ORDER BY item_id`

	rows, err := r.pool.Query(ctx, q, refType)
	if err != nil {
		return nil, fmt.Errorf("list %s reference data: %w", refType, err)
	}
	defer rows.Close()

	var out []RefValue
	for rows.Next() {
		var v RefValue
		if err := rows.Scan(&v.ID, &v.RefType, &v.ItemID, &v.Name, &v.Active); err != nil {
			return nil, fmt.Errorf("scan reference row: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reference rows: %w", err)
	}
	return out, nil
}
