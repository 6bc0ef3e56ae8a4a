package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/appointment-scheduler/internal/persistence"
)

// ExceptionRepository implements persistence.ExceptionRepository using SQLite.
type ExceptionRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewExceptionRepository creates a new SQLite exception repository.
func NewExceptionRepository(pool *ConnectionPool) *ExceptionRepository {
	return &ExceptionRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

const exceptionColumns = "id, schedule_id, exception_date, exception_type, start_time, end_time, created_at, updated_at"

// UpsertException inserts an exception or overwrites the one already stored
// at (scheduleID, date). The unique index on (schedule_id, exception_date)
// makes the overwrite atomic, so concurrent writers cannot produce two rows
// for the same occurrence.
func (r *ExceptionRepository) UpsertException(ctx context.Context, scheduleID int64, date string, kind persistence.ExceptionType, startTime, endTime *string) (persistence.Exception, error) {
	if scheduleID <= 0 {
		return persistence.Exception{}, persistence.ErrNotFound
	}

	now := time.Now().UTC().Format(time.RFC3339)
	var stored persistence.Exception

	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		_, err := r.helper.ExecTx(tx, `
			INSERT INTO schedule_exceptions (schedule_id, exception_date, exception_type, start_time, end_time, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (schedule_id, exception_date) DO UPDATE SET
				exception_type = excluded.exception_type,
				start_time = excluded.start_time,
				end_time = excluded.end_time,
				updated_at = excluded.updated_at
		`, scheduleID, date, string(kind), nullable(startTime), nullable(endTime), now, now)
		if err != nil {
			return r.mapper.MapError(err)
		}

		query := fmt.Sprintf("SELECT %s FROM schedule_exceptions WHERE schedule_id = ? AND exception_date = ?", exceptionColumns)
		stored, err = scanException(r.helper.QueryRowTx(tx, query, scheduleID, date))
		if err != nil {
			return r.mapper.MapError(err)
		}
		return nil
	})
	if err != nil {
		return persistence.Exception{}, err
	}

	return stored, nil
}

// GetException retrieves the exception at (scheduleID, date).
func (r *ExceptionRepository) GetException(ctx context.Context, scheduleID int64, date string) (persistence.Exception, error) {
	if scheduleID <= 0 {
		return persistence.Exception{}, persistence.ErrNotFound
	}

	query := fmt.Sprintf("SELECT %s FROM schedule_exceptions WHERE schedule_id = ? AND exception_date = ?", exceptionColumns)
	exception, err := scanException(r.helper.QueryRow(ctx, query, scheduleID, date))
	if err != nil {
		return persistence.Exception{}, r.mapper.MapError(err)
	}
	return exception, nil
}

// ListInDateRange returns exceptions dated within [startDate, endDate],
// both bounds inclusive, ordered by date ascending.
func (r *ExceptionRepository) ListInDateRange(ctx context.Context, startDate, endDate string) ([]persistence.Exception, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM schedule_exceptions
		WHERE exception_date >= ? AND exception_date <= ?
		ORDER BY exception_date ASC, id ASC
	`, exceptionColumns)

	return r.queryExceptions(ctx, query, startDate, endDate)
}

// ListByScheduleID returns every exception referencing the slot.
func (r *ExceptionRepository) ListByScheduleID(ctx context.Context, scheduleID int64) ([]persistence.Exception, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM schedule_exceptions
		WHERE schedule_id = ?
		ORDER BY exception_date ASC, id ASC
	`, exceptionColumns)

	return r.queryExceptions(ctx, query, scheduleID)
}

// DeleteException removes the override, reverting the date to its recurring
// default.
func (r *ExceptionRepository) DeleteException(ctx context.Context, scheduleID int64, date string) error {
	result, err := r.helper.Exec(ctx, `
		DELETE FROM schedule_exceptions WHERE schedule_id = ? AND exception_date = ?
	`, scheduleID, date)
	if err != nil {
		return r.mapper.MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// CheckTimeConflict reports whether any other schedule's modified exception
// on the exact date overlaps the half-open interval [startTime, endTime).
func (r *ExceptionRepository) CheckTimeConflict(ctx context.Context, date, startTime, endTime string, excludeScheduleID int64) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM schedule_exceptions
		WHERE exception_date = ? AND exception_type = 'modified'
		  AND start_time < ? AND end_time > ?
	`
	args := []any{date, endTime, startTime}

	if excludeScheduleID > 0 {
		query += " AND schedule_id != ?"
		args = append(args, excludeScheduleID)
	}

	var count int
	if err := r.helper.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return false, r.mapper.MapError(err)
	}
	return count > 0, nil
}

func (r *ExceptionRepository) queryExceptions(ctx context.Context, query string, args ...any) ([]persistence.Exception, error) {
	rows, err := r.helper.Query(ctx, query, args...)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var exceptions []persistence.Exception
	for rows.Next() {
		exception, err := scanException(rows)
		if err != nil {
			return nil, r.mapper.MapError(err)
		}
		exceptions = append(exceptions, exception)
	}

	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}
	return exceptions, nil
}

func scanException(row rowScanner) (persistence.Exception, error) {
	var exception persistence.Exception
	var kind string
	var startTime, endTime sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&exception.ID,
		&exception.ScheduleID,
		&exception.ExceptionDate,
		&kind,
		&startTime,
		&endTime,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		return persistence.Exception{}, err
	}

	exception.Type = persistence.ExceptionType(kind)
	if startTime.Valid {
		exception.StartTime = &startTime.String
	}
	if endTime.Valid {
		exception.EndTime = &endTime.String
	}

	if exception.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return persistence.Exception{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if exception.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return persistence.Exception{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return exception, nil
}

func nullable(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}
