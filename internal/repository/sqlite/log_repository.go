package sqlite

import (
	"context"

	"github.com/spec-kit/stargate-service/internal/domain"
)

type logRepository struct {
	q querier
}

func (r *logRepository) Append(ctx context.Context, entry *domain.LogEntry) error {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO logs (level, message, created_date) VALUES (?, ?, ?)`,
		entry.Level, entry.Message, entry.CreatedDate.UTC())
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	entry.ID = id
	return nil
}

func (r *logRepository) ListRecent(ctx context.Context, limit int) ([]domain.LogEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, level, message, created_date FROM logs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.LogEntry
	for rows.Next() {
		var entry domain.LogEntry
		if err := rows.Scan(&entry.ID, &entry.Level, &entry.Message, &entry.CreatedDate); err != nil {
			return nil, err
		}
		entry.CreatedDate = entry.CreatedDate.UTC()
		result = append(result, entry)
	}
	return result, rows.Err()
}
