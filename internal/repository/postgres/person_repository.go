package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/stargate-service/internal/domain"
	"github.com/spec-kit/stargate-service/internal/repository"
)

type personRepository struct {
	q querier
}

func (r *personRepository) Create(ctx context.Context, person *domain.Person) error {
	const query = `
        INSERT INTO person (name, current_rank, current_duty_title, career_start_date, career_end_date)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id`
	err := r.q.QueryRow(ctx, query,
		person.Name,
		nullable(person.CurrentRank),
		nullable(person.CurrentDutyTitle),
		person.CareerStartDate,
		person.CareerEndDate,
	).Scan(&person.ID)
	if isUniqueViolation(err) {
		return repository.ErrDuplicateName
	}
	return err
}

func (r *personRepository) Update(ctx context.Context, person *domain.Person) error {
	const query = `
        UPDATE person SET name=$1, current_rank=$2, current_duty_title=$3, career_start_date=$4, career_end_date=$5
        WHERE id=$6`
	cmd, err := r.q.Exec(ctx, query,
		person.Name,
		nullable(person.CurrentRank),
		nullable(person.CurrentDutyTitle),
		person.CareerStartDate,
		person.CareerEndDate,
		person.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateName
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *personRepository) GetByName(ctx context.Context, name string, matching domain.NameMatching) (*domain.Person, error) {
	query := `
        SELECT id, name, current_rank, current_duty_title, career_start_date, career_end_date
        FROM person WHERE name=$1 ORDER BY id LIMIT 1`
	if matching == domain.NameMatchingCaseInsensitive {
		query = `
        SELECT id, name, current_rank, current_duty_title, career_start_date, career_end_date
        FROM person WHERE LOWER(name)=LOWER($1) ORDER BY id LIMIT 1`
	}
	person, err := scanPerson(r.q.QueryRow(ctx, query, name))
	if err != nil {
		return nil, mapNoRows(err)
	}
	return person, nil
}

func (r *personRepository) List(ctx context.Context) ([]domain.Person, error) {
	const query = `
        SELECT id, name, current_rank, current_duty_title, career_start_date, career_end_date
        FROM person ORDER BY id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Person{}
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *person)
	}
	return result, rows.Err()
}

func (r *personRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM person WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanPerson(row pgx.Row) (*domain.Person, error) {
	var (
		person domain.Person
		rank   *string
		title  *string
	)
	if err := row.Scan(
		&person.ID,
		&person.Name,
		&rank,
		&title,
		&person.CareerStartDate,
		&person.CareerEndDate,
	); err != nil {
		return nil, err
	}
	person.CurrentRank = deref(rank)
	person.CurrentDutyTitle = deref(title)
	person.CareerStartDate = utc(person.CareerStartDate)
	person.CareerEndDate = utc(person.CareerEndDate)
	return &person, nil
}
