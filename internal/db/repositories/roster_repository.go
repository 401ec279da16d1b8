package repositories

import (
	"context"
	"fmt"
	"time"

	"blueline/reservehub/internal/constants"
	"blueline/reservehub/internal/models/dtos"

	"github.com/jmoiron/sqlx"
)

// RosterRepository serves the admin dashboard counts with raw SQL over sqlx.
// These are read-only aggregates; everything transactional stays on GORM.
type RosterRepository struct {
	db *sqlx.DB
}

// NewRosterRepository creates a new roster reporting repository
func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

// DashboardCounts computes the admin landing-page aggregates in one round
// of queries.
func (r *RosterRepository) DashboardCounts(ctx context.Context, now time.Time) (*dtos.DashboardCounts, error) {
	counts := &dtos.DashboardCounts{
		MembersByPosition: make(map[constants.Position]int),
	}

	if err := r.db.GetContext(ctx, &counts.ActiveMembers,
		`SELECT COUNT(*) FROM users WHERE status = 'active'`); err != nil {
		return nil, fmt.Errorf("failed to count active members: %w", err)
	}

	rows, err := r.db.QueryxContext(ctx,
		`SELECT position, COUNT(*) FROM users WHERE status = 'active' GROUP BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to count members by position: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var position constants.Position
		var n int
		if err := rows.Scan(&position, &n); err != nil {
			return nil, fmt.Errorf("failed to scan position count: %w", err)
		}
		counts.MembersByPosition[position] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read position counts: %w", err)
	}

	if err := r.db.GetContext(ctx, &counts.EquipmentOut,
		`SELECT COUNT(*) FROM equipment WHERE is_assigned = true`); err != nil {
		return nil, fmt.Errorf("failed to count equipment out: %w", err)
	}

	if err := r.db.GetContext(ctx, &counts.UpcomingEvents,
		`SELECT COUNT(*) FROM events WHERE starts_at > $1`, now); err != nil {
		return nil, fmt.Errorf("failed to count upcoming events: %w", err)
	}

	if err := r.db.GetContext(ctx, &counts.UpcomingTrainings,
		`SELECT COUNT(*) FROM trainings WHERE starts_at > $1`, now); err != nil {
		return nil, fmt.Errorf("failed to count upcoming trainings: %w", err)
	}

	return counts, nil
}
