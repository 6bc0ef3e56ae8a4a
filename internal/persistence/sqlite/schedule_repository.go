package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/appointment-scheduler/internal/persistence"
)

// ScheduleRepository implements persistence.ScheduleRepository using SQLite.
type ScheduleRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewScheduleRepository creates a new SQLite schedule repository.
func NewScheduleRepository(pool *ConnectionPool) *ScheduleRepository {
	return &ScheduleRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

const slotColumns = "id, day_of_week, start_time, end_time, is_active, created_at, updated_at"

// CreateSlot inserts a new active slot. The overlap and capacity invariants
// are re-checked inside the insert transaction: the service-level pre-check
// exists for precise error reporting, this one exists so two concurrent
// creators cannot both commit.
func (r *ScheduleRepository) CreateSlot(ctx context.Context, dayOfWeek int, startTime, endTime string, maxPerDay int) (persistence.RecurringSlot, error) {
	now := time.Now().UTC()
	var created persistence.RecurringSlot

	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		var overlapping int
		err := r.helper.QueryRowTx(tx, `
			SELECT COUNT(*)
			FROM schedules
			WHERE day_of_week = ? AND is_active = 1
			  AND start_time < ? AND end_time > ?
		`, dayOfWeek, endTime, startTime).Scan(&overlapping)
		if err != nil {
			return r.mapper.MapError(err)
		}
		if overlapping > 0 {
			return persistence.ErrConflict
		}

		if maxPerDay > 0 {
			var active int
			err := r.helper.QueryRowTx(tx, `
				SELECT COUNT(*) FROM schedules WHERE day_of_week = ? AND is_active = 1
			`, dayOfWeek).Scan(&active)
			if err != nil {
				return r.mapper.MapError(err)
			}
			if active >= maxPerDay {
				return persistence.ErrCapacityExceeded
			}
		}

		result, err := r.helper.ExecTx(tx, `
			INSERT INTO schedules (day_of_week, start_time, end_time, is_active, created_at, updated_at)
			VALUES (?, ?, ?, 1, ?, ?)
		`, dayOfWeek, startTime, endTime, now.Format(time.RFC3339), now.Format(time.RFC3339))
		if err != nil {
			return r.mapper.MapError(err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read inserted slot id: %w", err)
		}

		created = persistence.RecurringSlot{
			ID:        id,
			DayOfWeek: dayOfWeek,
			StartTime: startTime,
			EndTime:   endTime,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return nil
	})
	if err != nil {
		return persistence.RecurringSlot{}, err
	}

	return created, nil
}

// ListActiveByDay returns active slots for a weekday ordered by start time.
func (r *ScheduleRepository) ListActiveByDay(ctx context.Context, dayOfWeek int) ([]persistence.RecurringSlot, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM schedules
		WHERE day_of_week = ? AND is_active = 1
		ORDER BY start_time ASC, id ASC
	`, slotColumns)

	return r.querySlots(ctx, query, dayOfWeek)
}

// ListAllActive returns active slots ordered by (day of week, start time).
func (r *ScheduleRepository) ListAllActive(ctx context.Context) ([]persistence.RecurringSlot, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM schedules
		WHERE is_active = 1
		ORDER BY day_of_week ASC, start_time ASC, id ASC
	`, slotColumns)

	return r.querySlots(ctx, query)
}

// GetSlot retrieves a slot by ID regardless of its active state.
func (r *ScheduleRepository) GetSlot(ctx context.Context, id int64) (persistence.RecurringSlot, error) {
	if id <= 0 {
		return persistence.RecurringSlot{}, persistence.ErrNotFound
	}

	query := fmt.Sprintf("SELECT %s FROM schedules WHERE id = ?", slotColumns)
	slot, err := scanSlot(r.helper.QueryRow(ctx, query, id))
	if err != nil {
		return persistence.RecurringSlot{}, r.mapper.MapError(err)
	}
	return slot, nil
}

// Deactivate sets is_active to false. The write is idempotent: deactivating
// an already-inactive slot succeeds without touching updated_at again.
func (r *ScheduleRepository) Deactivate(ctx context.Context, id int64) error {
	if id <= 0 {
		return persistence.ErrNotFound
	}

	result, err := r.helper.Exec(ctx, `
		UPDATE schedules SET is_active = 0, updated_at = ?
		WHERE id = ? AND is_active = 1
	`, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return r.mapper.MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}

	// Nothing updated: distinguish "already inactive" from "missing".
	var exists int
	if err := r.helper.QueryRow(ctx, "SELECT COUNT(*) FROM schedules WHERE id = ?", id).Scan(&exists); err != nil {
		return r.mapper.MapError(err)
	}
	if exists == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// CheckOverlap reports whether any other active slot on the weekday overlaps
// the half-open interval [startTime, endTime).
func (r *ScheduleRepository) CheckOverlap(ctx context.Context, dayOfWeek int, startTime, endTime string, excludeID int64) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM schedules
		WHERE day_of_week = ? AND is_active = 1
		  AND start_time < ? AND end_time > ?
	`
	args := []any{dayOfWeek, endTime, startTime}

	if excludeID > 0 {
		query += " AND id != ?"
		args = append(args, excludeID)
	}

	var count int
	if err := r.helper.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return false, r.mapper.MapError(err)
	}
	return count > 0, nil
}

// CountActiveByDay returns the number of active slots on the weekday.
func (r *ScheduleRepository) CountActiveByDay(ctx context.Context, dayOfWeek int) (int, error) {
	var count int
	err := r.helper.QueryRow(ctx, `
		SELECT COUNT(*) FROM schedules WHERE day_of_week = ? AND is_active = 1
	`, dayOfWeek).Scan(&count)
	if err != nil {
		return 0, r.mapper.MapError(err)
	}
	return count, nil
}

func (r *ScheduleRepository) querySlots(ctx context.Context, query string, args ...any) ([]persistence.RecurringSlot, error) {
	rows, err := r.helper.Query(ctx, query, args...)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var slots []persistence.RecurringSlot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, r.mapper.MapError(err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}
	return slots, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSlot(row rowScanner) (persistence.RecurringSlot, error) {
	var slot persistence.RecurringSlot
	var isActive int
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&slot.ID,
		&slot.DayOfWeek,
		&slot.StartTime,
		&slot.EndTime,
		&isActive,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		return persistence.RecurringSlot{}, err
	}

	slot.IsActive = isActive != 0

	if slot.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return persistence.RecurringSlot{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if slot.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return persistence.RecurringSlot{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return slot, nil
}
