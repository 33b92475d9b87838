package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PersonModel serves one person table, actor or technician.
type PersonModel struct {
	DB      *sql.DB
	Dialect Dialect
	table   personTable
}

func (m PersonModel) GetAll() ([]*Person, error) {
	query := fmt.Sprintf(`
    SELECT id, name
    FROM %s
    ORDER BY id`, m.table.name)

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("data: query all %s: %w", m.table.name, err)
	}
	defer rows.Close()

	people := []*Person{}
	byID := map[int64]*Person{}
	for rows.Next() {
		p := Person{Movies: Refs{}}
		err = rows.Scan(&p.ID, &p.Name)
		if err != nil {
			return nil, fmt.Errorf("data: scan a %s: %w", m.table.name, err)
		}

		people = append(people, &p)
		byID[p.ID] = &p
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("data: iterate all %s: %w", m.table.name, err)
	}

	query = fmt.Sprintf(`
    SELECT j.%s, m.id, m.name
    FROM %s j INNER JOIN movie m ON m.id = j.movie_id
    ORDER BY j.%s, m.id`, m.table.column, m.table.join, m.table.column)

	err = m.scanMovies(ctx, query, nil, byID)
	if err != nil {
		return nil, err
	}

	return people, nil
}

func (m PersonModel) Get(id int64) (*Person, error) {
	if id <= 0 {
		return nil, ErrRecordNotFound
	}

	query := fmt.Sprintf(`
    SELECT id, name
    FROM %s
    WHERE id = ?`, m.table.name)

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	p := Person{Movies: Refs{}}
	err := m.DB.QueryRowContext(ctx, m.Dialect.rebind(query), id).Scan(&p.ID, &p.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}

		return nil, fmt.Errorf("data: query a %s: %w", m.table.name, err)
	}

	query = fmt.Sprintf(`
    SELECT j.%s, m.id, m.name
    FROM %s j INNER JOIN movie m ON m.id = j.movie_id
    WHERE j.%s = ?
    ORDER BY m.id`, m.table.column, m.table.join, m.table.column)

	err = m.scanMovies(ctx, query, []any{id}, map[int64]*Person{p.ID: &p})
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// Delete removes a person that no movie refers to. The foreign key on the
// join table rejects the delete otherwise.
func (m PersonModel) Delete(id int64) error {
	if id <= 0 {
		return ErrRecordNotFound
	}

	stmt := fmt.Sprintf(`
    DELETE FROM %s
    WHERE id = ?`, m.table.name)

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	result, err := m.DB.ExecContext(ctx, m.Dialect.rebind(stmt), id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrPersonInUse
		}

		return fmt.Errorf("data: delete a %s: %w", m.table.name, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (m PersonModel) scanMovies(ctx context.Context, query string, args []any, byID map[int64]*Person) error {
	rows, err := m.DB.QueryContext(ctx, m.Dialect.rebind(query), args...)
	if err != nil {
		return fmt.Errorf("data: query movies of %s: %w", m.table.name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var personID int64
		var ref Ref
		err = rows.Scan(&personID, &ref.ID, &ref.Name)
		if err != nil {
			return fmt.Errorf("data: scan a movie of %s: %w", m.table.name, err)
		}

		if p, ok := byID[personID]; ok {
			p.Movies = append(p.Movies, ref)
		}
	}

	err = rows.Err()
	if err != nil {
		return fmt.Errorf("data: iterate movies of %s: %w", m.table.name, err)
	}

	return nil
}
