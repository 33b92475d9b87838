package data

// MovieFilters narrows GetAll. Empty fields do not filter.
//
// Director matches the technician association, not Movie.DirectorName.
type MovieFilters struct {
	Actor      string
	Director   string
	Technician string
}

func (f MovieFilters) matchActor(names []string) bool {
	return f.Actor == "" || contains(names, f.Actor)
}

func (f MovieFilters) matchTechnicians(names []string) bool {
	if f.Director != "" && !contains(names, f.Director) {
		return false
	}

	return f.Technician == "" || contains(names, f.Technician)
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}

	return false
}
