package data

import (
	"database/sql"
)

type Models struct {
	Movies      MovieStore
	Actors      PersonStore
	Technicians PersonStore
}

func NewModels(db *sql.DB, dialect Dialect) Models {
	return Models{
		Movies:      MovieModel{DB: db, Dialect: dialect},
		Actors:      PersonModel{DB: db, Dialect: dialect, table: actorTable},
		Technicians: PersonModel{DB: db, Dialect: dialect, table: technicianTable},
	}
}

// NewMemoryModels returns models backed by a single in-process store.
func NewMemoryModels() Models {
	s := newMemoryStore()

	return Models{
		Movies:      MemoryMovieModel{store: s},
		Actors:      MemoryPersonModel{store: s, table: actorTable},
		Technicians: MemoryPersonModel{store: s, table: technicianTable},
	}
}
