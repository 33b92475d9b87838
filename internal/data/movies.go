package data

import (
	"fmt"

	"huytran2000-hcmus/moviesinfo/internal/validator"
)

const maxNameLen = 100

type Movie struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	YearOfRelease *int32   `json:"year_of_release"`
	UserRatings   *float64 `json:"user_ratings"`
	DirectorName  *string  `json:"director_name"`
	Actors        Refs     `json:"actors"`
	Technicians   Refs     `json:"technicians"`
}

// MovieStore persists movies together with their actor and technician
// associations. Insert and Update create a new person row for every entry
// in Actors and Technicians; existing rows are never reused.
type MovieStore interface {
	GetAll(filters MovieFilters) ([]*Movie, error)
	Get(id int64) (*Movie, error)
	Insert(movie *Movie) error
	Update(movie *Movie) error
}

func ValidateMovie(v *validator.Validator, m *Movie) {
	v.CheckError(validator.NotBlank(m.Name), "name", "must be provided")
	v.CheckError(validator.LengthLessOrEqual(m.Name, maxNameLen), "name", fmt.Sprintf("must not be more than %d characters", maxNameLen))

	if m.DirectorName != nil {
		v.CheckError(validator.LengthLessOrEqual(*m.DirectorName, maxNameLen), "director_name", fmt.Sprintf("must not be more than %d characters", maxNameLen))
	}

	validateRefs(v, "actors", m.Actors)
	validateRefs(v, "technicians", m.Technicians)
}

func validateRefs(v *validator.Validator, key string, refs Refs) {
	for i, ref := range refs {
		field := fmt.Sprintf("%s[%d].name", key, i)
		v.CheckError(validator.NotBlank(ref.Name), field, "must be provided")
		v.CheckError(validator.LengthLessOrEqual(ref.Name, maxNameLen), field, fmt.Sprintf("must not be more than %d characters", maxNameLen))
	}
}
