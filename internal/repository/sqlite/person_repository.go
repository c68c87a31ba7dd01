package sqlite

import (
	"context"
	"database/sql"

	"github.com/spec-kit/stargate-service/internal/domain"
	"github.com/spec-kit/stargate-service/internal/repository"
)

const personColumns = `id, name, current_rank, current_duty_title, career_start_date, career_end_date`

type personRepository struct {
	q querier
}

func (r *personRepository) Create(ctx context.Context, person *domain.Person) error {
	const query = `
        INSERT INTO person (name, current_rank, current_duty_title, career_start_date, career_end_date)
        VALUES (?, ?, ?, ?, ?)`
	res, err := r.q.ExecContext(ctx, query,
		person.Name,
		nullString(person.CurrentRank),
		nullString(person.CurrentDutyTitle),
		toNullTime(person.CareerStartDate),
		toNullTime(person.CareerEndDate),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateName
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	person.ID = id
	return nil
}

func (r *personRepository) Update(ctx context.Context, person *domain.Person) error {
	const query = `
        UPDATE person SET name=?, current_rank=?, current_duty_title=?, career_start_date=?, career_end_date=?
        WHERE id=?`
	res, err := r.q.ExecContext(ctx, query,
		person.Name,
		nullString(person.CurrentRank),
		nullString(person.CurrentDutyTitle),
		toNullTime(person.CareerStartDate),
		toNullTime(person.CareerEndDate),
		person.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateName
		}
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

func (r *personRepository) GetByName(ctx context.Context, name string, matching domain.NameMatching) (*domain.Person, error) {
	query := `SELECT ` + personColumns + ` FROM person WHERE name=? ORDER BY id LIMIT 1`
	if matching == domain.NameMatchingCaseInsensitive {
		query = `SELECT ` + personColumns + ` FROM person WHERE LOWER(name)=LOWER(?) ORDER BY id LIMIT 1`
	}
	person, err := scanPerson(r.q.QueryRowContext(ctx, query, name))
	if err != nil {
		return nil, mapNoRows(err)
	}
	return person, nil
}

func (r *personRepository) List(ctx context.Context) ([]domain.Person, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+personColumns+` FROM person ORDER BY id`)
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
	res, err := r.q.ExecContext(ctx, `DELETE FROM person WHERE id=?`, id)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(row rowScanner) (*domain.Person, error) {
	var (
		person     domain.Person
		rank       sql.NullString
		title      sql.NullString
		careerFrom sql.NullTime
		careerTo   sql.NullTime
	)
	if err := row.Scan(&person.ID, &person.Name, &rank, &title, &careerFrom, &careerTo); err != nil {
		return nil, err
	}
	person.CurrentRank = rank.String
	person.CurrentDutyTitle = title.String
	person.CareerStartDate = fromNullTime(careerFrom)
	person.CareerEndDate = fromNullTime(careerTo)
	return &person, nil
}
