package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/iliyamo/visit-counter/internal/model"
)

// VisitStore records visits and reports how many there are.
type VisitStore interface {
	Record(ctx context.Context, addr string) (model.Visit, error)
	Count(ctx context.Context) (int64, error)
}

const createVisitsTable = `CREATE TABLE IF NOT EXISTS visits (
    id INT AUTO_INCREMENT PRIMARY KEY,
    timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
    ip_address VARCHAR(45)
)`

// VisitRepo persists visits in the `visits` table.
type VisitRepo struct {
	DB  *sql.DB
	now func() time.Time
}

func NewVisitRepo(db *sql.DB) *VisitRepo { return &VisitRepo{DB: db, now: time.Now} }

// EnsureTable creates the visits table if it does not exist.  Safe to run
// on every start.
func (r *VisitRepo) EnsureTable(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, createVisitsTable); err != nil {
		return fmt.Errorf("create visits table: %w", err)
	}
	return nil
}

// Record inserts one visit stamped with the current time.  An empty addr is
// stored as model.UnknownAddress.
func (r *VisitRepo) Record(ctx context.Context, addr string) (model.Visit, error) {
	v := model.Visit{
		Timestamp: r.now().UTC().Truncate(time.Second),
		IPAddress: model.NormalizeAddress(addr),
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO visits (timestamp, ip_address) VALUES (?, ?)",
		v.Timestamp, v.IPAddress)
	if err != nil {
		return model.Visit{}, fmt.Errorf("insert visit: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Visit{}, fmt.Errorf("insert visit: %w", err)
	}
	v.ID = uint64(id)
	return v, nil
}

// Count returns the total number of recorded visits.
func (r *VisitRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) AS total FROM visits").Scan(&total); err != nil {
		return 0, fmt.Errorf("count visits: %w", err)
	}
	return total, nil
}
