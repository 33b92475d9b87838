package data

// Person is an actor or a technician.
type Person struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Movies Refs   `json:"movies"`
}

type PersonStore interface {
	GetAll() ([]*Person, error)
	Get(id int64) (*Person, error)
	Delete(id int64) error
}

// personTable names the entity table of one person kind and the join table
// linking it to movies.
type personTable struct {
	name   string
	join   string
	column string
}

var (
	actorTable      = personTable{name: "actor", join: "movie_actors", column: "actor_id"}
	technicianTable = personTable{name: "technician", join: "movie_technicians", column: "technician_id"}
)
