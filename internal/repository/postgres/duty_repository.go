package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/stargate-service/internal/domain"
	"github.com/spec-kit/stargate-service/internal/repository"
)

type dutyRepository struct {
	q querier
}

func (r *dutyRepository) Create(ctx context.Context, duty *domain.AstronautDuty) error {
	const query = `
        INSERT INTO astronaut_duty (person_id, rank, duty_title, duty_start_date, duty_end_date)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id`
	return r.q.QueryRow(ctx, query,
		duty.PersonID,
		duty.Rank,
		duty.DutyTitle,
		duty.DutyStartDate,
		duty.DutyEndDate,
	).Scan(&duty.ID)
}

func (r *dutyRepository) Update(ctx context.Context, duty *domain.AstronautDuty) error {
	const query = `
        UPDATE astronaut_duty SET rank=$1, duty_title=$2, duty_start_date=$3, duty_end_date=$4
        WHERE id=$5`
	cmd, err := r.q.Exec(ctx, query,
		duty.Rank,
		duty.DutyTitle,
		duty.DutyStartDate,
		duty.DutyEndDate,
		duty.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *dutyRepository) GetOpenByPerson(ctx context.Context, personID int64) (*domain.AstronautDuty, error) {
	const query = `
        SELECT id, person_id, rank, duty_title, duty_start_date, duty_end_date
        FROM astronaut_duty WHERE person_id=$1 AND duty_end_date IS NULL
        ORDER BY id DESC LIMIT 1`
	duty, err := scanDuty(r.q.QueryRow(ctx, query, personID))
	if err != nil {
		return nil, mapNoRows(err)
	}
	return duty, nil
}

func (r *dutyRepository) ListByPerson(ctx context.Context, personID int64) ([]domain.AstronautDuty, error) {
	const query = `
        SELECT id, person_id, rank, duty_title, duty_start_date, duty_end_date
        FROM astronaut_duty WHERE person_id=$1 ORDER BY duty_start_date ASC, id ASC`
	rows, err := r.q.Query(ctx, query, personID)
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

func scanDuty(row pgx.Row) (*domain.AstronautDuty, error) {
	var duty domain.AstronautDuty
	if err := row.Scan(
		&duty.ID,
		&duty.PersonID,
		&duty.Rank,
		&duty.DutyTitle,
		&duty.DutyStartDate,
		&duty.DutyEndDate,
	); err != nil {
		return nil, err
	}
	duty.DutyStartDate = duty.DutyStartDate.UTC()
	duty.DutyEndDate = utc(duty.DutyEndDate)
	return &duty, nil
}
