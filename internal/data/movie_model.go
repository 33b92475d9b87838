package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type MovieModel struct {
	DB      *sql.DB
	Dialect Dialect
}

func (m MovieModel) Insert(movie *Movie) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("data: begin insert a movie: %w", err)
	}
	defer tx.Rollback()

	query := `
    INSERT INTO movie (name, year_of_release, user_ratings, director_name)
    VALUES (?, ?, ?, ?)`

	args := []any{movie.Name, movie.YearOfRelease, movie.UserRatings, movie.DirectorName}
	movie.ID, err = m.Dialect.insert(ctx, tx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateMovieName
		}

		return fmt.Errorf("data: insert a movie: %w", err)
	}

	err = m.attachAll(ctx, tx, movie)
	if err != nil {
		return err
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("data: commit insert a movie: %w", err)
	}

	return nil
}

func (m MovieModel) Get(id int64) (*Movie, error) {
	if id <= 0 {
		return nil, ErrRecordNotFound
	}

	query := `
    SELECT id, name, year_of_release, user_ratings, director_name
    FROM movie
    WHERE id = ?`

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var movie Movie
	err := m.DB.QueryRowContext(ctx, m.Dialect.rebind(query), id).Scan(
		&movie.ID,
		&movie.Name,
		&movie.YearOfRelease,
		&movie.UserRatings,
		&movie.DirectorName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}

		return nil, fmt.Errorf("data: query a movie: %w", err)
	}

	movies := []*Movie{&movie}
	err = m.loadRefs(ctx, movies)
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

// Update overwrites the scalar fields of movie and replaces both of its
// association lists with the ones carried by movie.
func (m MovieModel) Update(movie *Movie) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("data: begin update a movie: %w", err)
	}
	defer tx.Rollback()

	query := `
    UPDATE movie
    SET name = ?, year_of_release = ?, user_ratings = ?, director_name = ?
    WHERE id = ?`

	args := []any{
		movie.Name,
		movie.YearOfRelease,
		movie.UserRatings,
		movie.DirectorName,
		movie.ID,
	}
	_, err = tx.ExecContext(ctx, m.Dialect.rebind(query), args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateMovieName
		}

		return fmt.Errorf("data: update a movie: %w", err)
	}

	for _, t := range []personTable{actorTable, technicianTable} {
		stmt := fmt.Sprintf(`DELETE FROM %s WHERE movie_id = ?`, t.join)
		_, err = tx.ExecContext(ctx, m.Dialect.rebind(stmt), movie.ID)
		if err != nil {
			return fmt.Errorf("data: clear %s of a movie: %w", t.join, err)
		}
	}

	err = m.attachAll(ctx, tx, movie)
	if err != nil {
		return err
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("data: commit update a movie: %w", err)
	}

	return nil
}

func (m MovieModel) GetAll(filters MovieFilters) ([]*Movie, error) {
	query := fmt.Sprintf(`
    SELECT m.id, m.name, m.year_of_release, m.user_ratings, m.director_name
    FROM movie m
    WHERE (? = '' OR %s)
    AND (? = '' OR %s)
    AND (? = '' OR %s)
    ORDER BY m.id`,
		hasPersonNamed(actorTable),
		hasPersonNamed(technicianTable),
		hasPersonNamed(technicianTable),
	)

	args := []any{
		filters.Actor, filters.Actor,
		filters.Director, filters.Director,
		filters.Technician, filters.Technician,
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, m.Dialect.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("data: query all movies: %w", err)
	}
	defer rows.Close()

	movies := []*Movie{}
	for rows.Next() {
		var mv Movie
		err = rows.Scan(
			&mv.ID,
			&mv.Name,
			&mv.YearOfRelease,
			&mv.UserRatings,
			&mv.DirectorName,
		)
		if err != nil {
			return nil, fmt.Errorf("data: scan a movie: %w", err)
		}

		movies = append(movies, &mv)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("data: iterate all movies: %w", err)
	}

	err = m.loadRefs(ctx, movies)
	if err != nil {
		return nil, err
	}

	return movies, nil
}

func hasPersonNamed(t personTable) string {
	return fmt.Sprintf(`EXISTS (
        SELECT 1 FROM %s j INNER JOIN %s p ON p.id = j.%s
        WHERE j.movie_id = m.id AND p.name = ?)`, t.join, t.name, t.column)
}

func (m MovieModel) attachAll(ctx context.Context, tx *sql.Tx, movie *Movie) error {
	for i := range movie.Actors {
		err := m.attach(ctx, tx, actorTable, movie.ID, &movie.Actors[i])
		if err != nil {
			return err
		}
	}

	for i := range movie.Technicians {
		err := m.attach(ctx, tx, technicianTable, movie.ID, &movie.Technicians[i])
		if err != nil {
			return err
		}
	}

	return nil
}

// attach creates a new person row for ref and links it to the movie.
func (m MovieModel) attach(ctx context.Context, tx *sql.Tx, t personTable, movieID int64, ref *Ref) error {
	query := fmt.Sprintf(`INSERT INTO %s (name) VALUES (?)`, t.name)

	var err error
	ref.ID, err = m.Dialect.insert(ctx, tx, query, ref.Name)
	if err != nil {
		return fmt.Errorf("data: insert a %s: %w", t.name, err)
	}

	stmt := fmt.Sprintf(`INSERT INTO %s (movie_id, %s) VALUES (?, ?)`, t.join, t.column)
	_, err = tx.ExecContext(ctx, m.Dialect.rebind(stmt), movieID, ref.ID)
	if err != nil {
		return fmt.Errorf("data: link a %s to movie with id=%d: %w", t.name, movieID, err)
	}

	return nil
}

// loadRefs fills Actors and Technicians of every movie in movies.
func (m MovieModel) loadRefs(ctx context.Context, movies []*Movie) error {
	if len(movies) == 0 {
		return nil
	}

	byID := make(map[int64]*Movie, len(movies))
	ids := make([]any, 0, len(movies))
	for _, mv := range movies {
		mv.Actors = Refs{}
		mv.Technicians = Refs{}
		byID[mv.ID] = mv
		ids = append(ids, mv.ID)
	}

	for _, t := range []personTable{actorTable, technicianTable} {
		query := fmt.Sprintf(`
        SELECT j.movie_id, p.id, p.name
        FROM %s j INNER JOIN %s p ON p.id = j.%s
        WHERE j.movie_id IN (%s)
        ORDER BY j.movie_id, p.id`, t.join, t.name, t.column, placeholders(len(ids)))

		rows, err := m.DB.QueryContext(ctx, m.Dialect.rebind(query), ids...)
		if err != nil {
			return fmt.Errorf("data: query %s of movies: %w", t.join, err)
		}

		for rows.Next() {
			var movieID int64
			var ref Ref
			err = rows.Scan(&movieID, &ref.ID, &ref.Name)
			if err != nil {
				rows.Close()
				return fmt.Errorf("data: scan a %s: %w", t.name, err)
			}

			mv := byID[movieID]
			if t == actorTable {
				mv.Actors = append(mv.Actors, ref)
			} else {
				mv.Technicians = append(mv.Technicians, ref)
			}
		}

		err = rows.Err()
		rows.Close()
		if err != nil {
			return fmt.Errorf("data: iterate %s of movies: %w", t.join, err)
		}
	}

	return nil
}
