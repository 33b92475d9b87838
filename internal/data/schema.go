package data

import (
	"context"
	"database/sql"
	"fmt"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS movie (
    id bigserial PRIMARY KEY,
    name varchar(100) NOT NULL UNIQUE,
    year_of_release integer,
    user_ratings double precision,
    director_name varchar(100)
    )`,
	`CREATE TABLE IF NOT EXISTS actor (
    id bigserial PRIMARY KEY,
    name varchar(100) NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS technician (
    id bigserial PRIMARY KEY,
    name varchar(100) NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS movie_actors (
    movie_id bigint NOT NULL REFERENCES movie (id),
    actor_id bigint NOT NULL REFERENCES actor (id),
    PRIMARY KEY (movie_id, actor_id)
    )`,
	`CREATE TABLE IF NOT EXISTS movie_technicians (
    movie_id bigint NOT NULL REFERENCES movie (id),
    technician_id bigint NOT NULL REFERENCES technician (id),
    PRIMARY KEY (movie_id, technician_id)
    )`,
}

// Names compare byte for byte on MySQL, as they do on Postgres.
var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS movie (
    id BIGINT AUTO_INCREMENT PRIMARY KEY,
    name VARCHAR(100) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL UNIQUE,
    year_of_release INT,
    user_ratings DOUBLE,
    director_name VARCHAR(100) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin
    ) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS actor (
    id BIGINT AUTO_INCREMENT PRIMARY KEY,
    name VARCHAR(100) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL
    ) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS technician (
    id BIGINT AUTO_INCREMENT PRIMARY KEY,
    name VARCHAR(100) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL
    ) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS movie_actors (
    movie_id BIGINT NOT NULL,
    actor_id BIGINT NOT NULL,
    PRIMARY KEY (movie_id, actor_id),
    FOREIGN KEY (movie_id) REFERENCES movie (id),
    FOREIGN KEY (actor_id) REFERENCES actor (id)
    ) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS movie_technicians (
    movie_id BIGINT NOT NULL,
    technician_id BIGINT NOT NULL,
    PRIMARY KEY (movie_id, technician_id),
    FOREIGN KEY (movie_id) REFERENCES movie (id),
    FOREIGN KEY (technician_id) REFERENCES technician (id)
    ) ENGINE=InnoDB`,
}

// CreateSchema creates the tables that do not exist yet. Existing tables are
// left untouched.
func CreateSchema(db *sql.DB, d Dialect) error {
	stmts := postgresSchema
	if d == MySQL {
		stmts = mysqlSchema
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	for _, stmt := range stmts {
		_, err := db.ExecContext(ctx, stmt)
		if err != nil {
			return fmt.Errorf("data: create schema: %w", err)
		}
	}

	return nil
}
