package data

import (
	"sort"
	"sync"
)

// link is one row of a join table.
type link struct {
	movieID  int64
	personID int64
}

// memoryStore keeps every table in process memory. Associations are sets of
// id pairs keyed by join table name.
type memoryStore struct {
	mu     sync.RWMutex
	nextID map[string]int64
	movies map[int64]Movie
	people map[string]map[int64]string
	links  map[string]map[link]struct{}
}

func newMemoryStore() *memoryStore {
	s := &memoryStore{
		nextID: map[string]int64{},
		movies: map[int64]Movie{},
		people: map[string]map[int64]string{},
		links:  map[string]map[link]struct{}{},
	}

	for _, t := range []personTable{actorTable, technicianTable} {
		s.people[t.name] = map[int64]string{}
		s.links[t.join] = map[link]struct{}{}
	}

	return s
}

func (s *memoryStore) newID(table string) int64 {
	s.nextID[table]++
	return s.nextID[table]
}

func (s *memoryStore) nameTaken(name string, exceptID int64) bool {
	for id, mv := range s.movies {
		if id != exceptID && mv.Name == name {
			return true
		}
	}

	return false
}

func (s *memoryStore) refsOf(t personTable, movieID int64) Refs {
	refs := Refs{}
	for l := range s.links[t.join] {
		if l.movieID == movieID {
			refs = append(refs, Ref{ID: l.personID, Name: s.people[t.name][l.personID]})
		}
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })

	return refs
}

func (s *memoryStore) moviesOf(t personTable, personID int64) Refs {
	refs := Refs{}
	for l := range s.links[t.join] {
		if l.personID == personID {
			refs = append(refs, Ref{ID: l.movieID, Name: s.movies[l.movieID].Name})
		}
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })

	return refs
}

func (s *memoryStore) attach(t personTable, movieID int64, refs Refs) {
	for i := range refs {
		refs[i].ID = s.newID(t.name)
		s.people[t.name][refs[i].ID] = refs[i].Name
		s.links[t.join][link{movieID: movieID, personID: refs[i].ID}] = struct{}{}
	}
}

func (s *memoryStore) detach(t personTable, movieID int64) {
	for l := range s.links[t.join] {
		if l.movieID == movieID {
			delete(s.links[t.join], l)
		}
	}
}

func (s *memoryStore) load(id int64) *Movie {
	mv := cloneScalars(s.movies[id])
	mv.Actors = s.refsOf(actorTable, id)
	mv.Technicians = s.refsOf(technicianTable, id)

	return &mv
}

// cloneScalars copies the scalar fields of m so that no pointer is shared
// with the caller.
func cloneScalars(m Movie) Movie {
	out := Movie{ID: m.ID, Name: m.Name}
	if m.YearOfRelease != nil {
		v := *m.YearOfRelease
		out.YearOfRelease = &v
	}
	if m.UserRatings != nil {
		v := *m.UserRatings
		out.UserRatings = &v
	}
	if m.DirectorName != nil {
		v := *m.DirectorName
		out.DirectorName = &v
	}

	return out
}

type MemoryMovieModel struct {
	store *memoryStore
}

func (m MemoryMovieModel) Insert(movie *Movie) error {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTaken(movie.Name, 0) {
		return ErrDuplicateMovieName
	}

	movie.ID = s.newID("movie")
	s.movies[movie.ID] = cloneScalars(*movie)
	s.attach(actorTable, movie.ID, movie.Actors)
	s.attach(technicianTable, movie.ID, movie.Technicians)

	return nil
}

func (m MemoryMovieModel) Get(id int64) (*Movie, error) {
	s := m.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.movies[id]; !ok {
		return nil, ErrRecordNotFound
	}

	return s.load(id), nil
}

func (m MemoryMovieModel) Update(movie *Movie) error {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.movies[movie.ID]; !ok {
		return ErrRecordNotFound
	}

	if s.nameTaken(movie.Name, movie.ID) {
		return ErrDuplicateMovieName
	}

	s.movies[movie.ID] = cloneScalars(*movie)
	s.detach(actorTable, movie.ID)
	s.detach(technicianTable, movie.ID)
	s.attach(actorTable, movie.ID, movie.Actors)
	s.attach(technicianTable, movie.ID, movie.Technicians)

	return nil
}

func (m MemoryMovieModel) GetAll(filters MovieFilters) ([]*Movie, error) {
	s := m.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.movies))
	for id := range s.movies {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	movies := []*Movie{}
	for _, id := range ids {
		mv := s.load(id)
		if !filters.matchActor(mv.Actors.Names()) || !filters.matchTechnicians(mv.Technicians.Names()) {
			continue
		}

		movies = append(movies, mv)
	}

	return movies, nil
}

type MemoryPersonModel struct {
	store *memoryStore
	table personTable
}

func (m MemoryPersonModel) GetAll() ([]*Person, error) {
	s := m.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	people := []*Person{}
	for id, name := range s.people[m.table.name] {
		people = append(people, &Person{ID: id, Name: name, Movies: s.moviesOf(m.table, id)})
	}
	sort.Slice(people, func(i, j int) bool { return people[i].ID < people[j].ID })

	return people, nil
}

func (m MemoryPersonModel) Get(id int64) (*Person, error) {
	s := m.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	name, ok := s.people[m.table.name][id]
	if !ok {
		return nil, ErrRecordNotFound
	}

	return &Person{ID: id, Name: name, Movies: s.moviesOf(m.table, id)}, nil
}

func (m MemoryPersonModel) Delete(id int64) error {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.people[m.table.name][id]; !ok {
		return ErrRecordNotFound
	}

	if len(s.moviesOf(m.table, id)) > 0 {
		return ErrPersonInUse
	}

	delete(s.people[m.table.name], id)
	return nil
}
