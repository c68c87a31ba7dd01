package sqlite

import (
	"context"
	"database/sql"

	"github.com/spec-kit/stargate-service/internal/domain"
	"github.com/spec-kit/stargate-service/internal/repository"
)

const dutyColumns = `id, person_id, rank, duty_title, duty_start_date, duty_end_date`

type dutyRepository struct {
	q querier
}

func (r *dutyRepository) Create(ctx context.Context, duty *domain.AstronautDuty) error {
	const query = `
        INSERT INTO astronaut_duty (person_id, rank, duty_title, duty_start_date, duty_end_date)
        VALUES (?, ?, ?, ?, ?)`
	res, err := r.q.ExecContext(ctx, query,
		duty.PersonID,
		duty.Rank,
		duty.DutyTitle,
		duty.DutyStartDate,
		toNullTime(duty.DutyEndDate),
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	duty.ID = id
	return nil
}

func (r *dutyRepository) Update(ctx context.Context, duty *domain.AstronautDuty) error {
	const query = `
        UPDATE astronaut_duty SET rank=?, duty_title=?, duty_start_date=?, duty_end_date=?
        WHERE id=?`
	res, err := r.q.ExecContext(ctx, query,
		duty.Rank,
		duty.DutyTitle,
		duty.DutyStartDate,
		toNullTime(duty.DutyEndDate),
		duty.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *dutyRepository) GetOpenByPerson(ctx context.Context, personID int64) (*domain.AstronautDuty, error) {
	query := `SELECT ` + dutyColumns + ` FROM astronaut_duty
        WHERE person_id=? AND duty_end_date IS NULL ORDER BY id DESC LIMIT 1`
	duty, err := scanDuty(r.q.QueryRowContext(ctx, query, personID))
	if err != nil {
		return nil, mapNoRows(err)
	}
	return duty, nil
}

func (r *dutyRepository) ListByPerson(ctx context.Context, personID int64) ([]domain.AstronautDuty, error) {
	query := `SELECT ` + dutyColumns + ` FROM astronaut_duty
        WHERE person_id=? ORDER BY duty_start_date ASC, id ASC`
	rows, err := r.q.QueryContext(ctx, query, personID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.AstronautDuty{}
	for rows.Next() {
		duty, err := scanDuty(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *duty)
	}
	return result, rows.Err()
}

func scanDuty(row rowScanner) (*domain.AstronautDuty, error) {
	var (
		duty  domain.AstronautDuty
		start sql.NullTime
		end   sql.NullTime
	)
	if err := row.Scan(&duty.ID, &duty.PersonID, &duty.Rank, &duty.DutyTitle, &start, &end); err != nil {
		return nil, err
	}
	duty.DutyStartDate = start.Time.UTC()
	duty.DutyEndDate = fromNullTime(end)
	return &duty, nil
}
