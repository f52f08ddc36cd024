package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hefica/hefica-backend/internal/domain"
	"github.com/hefica/hefica-backend/pkg/database"
)

// progressLogRepository implements ProgressLogRepository interface
type progressLogRepository struct {
	db *database.Postgres
}

// NewProgressLogRepository creates a new progress log repository
func NewProgressLogRepository(db *database.Postgres) ProgressLogRepository {
	return &progressLogRepository{db: db}
}

const progressLogColumns = `id, user_id, log_type, value, unit, notes, log_date, created_at`

func scanProgressLog(row rowScanner) (*domain.ProgressLog, error) {
	log := &domain.ProgressLog{}
	var notes sql.NullString

	err := row.Scan(
		&log.ID,
		&log.UserID,
		&log.LogType,
		&log.Value,
		&log.Unit,
		&notes,
		&log.LogDate,
		&log.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if notes.Valid {
		log.Notes = &notes.String
	}

	return log, nil
}

// Create inserts a progress log entry
func (r *progressLogRepository) Create(ctx context.Context, log *domain.ProgressLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	now := time.Now()
	log.CreatedAt = now
	if log.LogDate.IsZero() {
		log.LogDate = now
	}

	query := `
		INSERT INTO progress_logs (id, user_id, log_type, value, unit, notes, log_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.DB.ExecContext(ctx, query,
		log.ID,
		log.UserID,
		log.LogType,
		log.Value,
		log.Unit,
		log.Notes,
		log.LogDate,
		log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create progress log: %w", err)
	}

	return nil
}

// GetByID retrieves one progress log of the user
func (r *progressLogRepository) GetByID(ctx context.Context, userID, id string) (*domain.ProgressLog, error) {
	query := fmt.Sprintf(`SELECT %s FROM progress_logs WHERE id = $1 AND user_id = $2`, progressLogColumns)

	log, err := scanProgressLog(r.db.DB.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("progress log %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get progress log: %w", err)
	}

	return log, nil
}

// ListByUser returns the user's progress logs matching the filter, newest first.
func (r *progressLogRepository) ListByUser(ctx context.Context, userID string, filter ProgressLogFilter) ([]*domain.ProgressLog, error) {
	query := fmt.Sprintf(`SELECT %s FROM progress_logs WHERE user_id = $1`, progressLogColumns)
	args := []any{userID}

	if filter.LogType != "" {
		args = append(args, filter.LogType)
		query += fmt.Sprintf(" AND log_type = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND log_date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND log_date <= $%d", len(args))
	}
	query += " ORDER BY log_date DESC"

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress logs: %w", err)
	}
	defer rows.Close()

	var logs []*domain.ProgressLog
	for rows.Next() {
		log, err := scanProgressLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan progress log: %w", err)
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}

// Update persists progress log changes; ownership enforced in the WHERE clause.
func (r *progressLogRepository) Update(ctx context.Context, log *domain.ProgressLog) error {
	query := `
		UPDATE progress_logs
		SET log_type = $3, value = $4, unit = $5, notes = $6, log_date = $7
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.DB.ExecContext(ctx, query,
		log.ID,
		log.UserID,
		log.LogType,
		log.Value,
		log.Unit,
		log.Notes,
		log.LogDate,
	)
	if err != nil {
		return fmt.Errorf("failed to update progress log: %w", err)
	}

	return checkAffected(result, "progress log")
}

// Delete removes a progress log owned by the user
func (r *progressLogRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM progress_logs WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete progress log: %w", err)
	}

	return checkAffected(result, "progress log")
}

// LatestByType returns the most recent log of the given type.
func (r *progressLogRepository) LatestByType(ctx context.Context, userID, logType string) (*domain.ProgressLog, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM progress_logs
		WHERE user_id = $1 AND log_type = $2
		ORDER BY log_date DESC
		LIMIT 1
	`, progressLogColumns)

	log, err := scanProgressLog(r.db.DB.QueryRowContext(ctx, query, userID, logType))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no %s log found: %w", logType, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get latest progress log: %w", err)
	}

	return log, nil
}
