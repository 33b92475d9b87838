package data

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestMemoryInsertAssignsIDs(t *testing.T) {
	models := NewMemoryModels()

	movie := &Movie{
		Name:        "Inception",
		Actors:      Refs{{Name: "Leo"}, {Name: "Tom"}},
		Technicians: Refs{{Name: "Hans"}},
	}
	err := models.Movies.Insert(movie)
	if err != nil {
		t.Fatal(err)
	}

	if movie.ID != 1 {
		t.Errorf("movie id = %d, want 1", movie.ID)
	}
	if movie.Actors[0].ID != 1 || movie.Actors[1].ID != 2 || movie.Technicians[0].ID != 1 {
		t.Errorf("person ids = %+v %+v", movie.Actors, movie.Technicians)
	}

	got, err := models.Movies.Get(movie.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !equal(got.Actors.Names(), []string{"Leo", "Tom"}) || !equal(got.Technicians.Names(), []string{"Hans"}) {
		t.Errorf("got actors=%v technicians=%v", got.Actors, got.Technicians)
	}
}

func TestMemoryUniqueName(t *testing.T) {
	models := NewMemoryModels()

	err := models.Movies.Insert(&Movie{Name: "Heat", Actors: Refs{{Name: "Al"}}})
	if err != nil {
		t.Fatal(err)
	}

	err = models.Movies.Insert(&Movie{Name: "Heat", Actors: Refs{{Name: "Bob"}}})
	if !errors.Is(err, ErrDuplicateMovieName) {
		t.Fatalf("err = %v, want ErrDuplicateMovieName", err)
	}

	actors, _ := models.Actors.GetAll()
	if len(actors) != 1 {
		t.Errorf("failed insert must not create people, got %d actors", len(actors))
	}

	second := &Movie{Name: "Ronin"}
	_ = models.Movies.Insert(second)

	second.Name = "Heat"
	err = models.Movies.Update(second)
	if !errors.Is(err, ErrDuplicateMovieName) {
		t.Errorf("rename err = %v, want ErrDuplicateMovieName", err)
	}

	second.Name = "Ronin"
	if err := models.Movies.Update(second); err != nil {
		t.Errorf("keeping its own name must be allowed: %v", err)
	}
}

func TestMemoryUpdateReplacesAssociations(t *testing.T) {
	models := NewMemoryModels()

	movie := &Movie{Name: "Inception", Actors: Refs{{Name: "Leo"}}, Technicians: Refs{{Name: "Hans"}}}
	_ = models.Movies.Insert(movie)

	movie.Actors = Refs{{Name: "Leo"}}
	movie.Technicians = nil
	err := models.Movies.Update(movie)
	if err != nil {
		t.Fatal(err)
	}

	actors, _ := models.Actors.GetAll()
	if len(actors) != 2 {
		t.Fatalf("got %d actors, want the old row plus a new one", len(actors))
	}
	if len(actors[0].Movies) != 0 || !equal(actors[1].Movies.Names(), []string{"Inception"}) {
		t.Errorf("actors = %+v %+v", actors[0], actors[1])
	}

	got, _ := models.Movies.Get(movie.ID)
	if len(got.Technicians) != 0 {
		t.Errorf("technicians = %v, want none", got.Technicians)
	}

	err = models.Movies.Update(&Movie{ID: 99, Name: "Nope"})
	if !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("err = %v, want ErrRecordNotFound", err)
	}
}

func TestMemoryGetReturnsCopies(t *testing.T) {
	models := NewMemoryModels()

	year := int32(1995)
	movie := &Movie{Name: "Heat", YearOfRelease: &year}
	_ = models.Movies.Insert(movie)

	year = 2000
	got, _ := models.Movies.Get(movie.ID)
	if *got.YearOfRelease != 1995 {
		t.Errorf("stored year changed through caller pointer: %d", *got.YearOfRelease)
	}

	*got.YearOfRelease = 2020
	again, _ := models.Movies.Get(movie.ID)
	if *again.YearOfRelease != 1995 {
		t.Errorf("stored year changed through returned pointer: %d", *again.YearOfRelease)
	}
}

func TestMemoryGetAllFilters(t *testing.T) {
	models := NewMemoryModels()

	_ = models.Movies.Insert(&Movie{Name: "Inception", Actors: Refs{{Name: "Leo"}}, Technicians: Refs{{Name: "Wally"}}})
	_ = models.Movies.Insert(&Movie{Name: "Dunkirk", Actors: Refs{{Name: "Tom"}}, Technicians: Refs{{Name: "Hans"}}})

	tests := []struct {
		filters  MovieFilters
		expected []string
	}{
		{MovieFilters{}, []string{"Inception", "Dunkirk"}},
		{MovieFilters{Actor: "Leo"}, []string{"Inception"}},
		{MovieFilters{Director: "Hans"}, []string{"Dunkirk"}},
		{MovieFilters{Director: "Hans", Technician: "Wally"}, []string{}},
		{MovieFilters{Actor: "Hans"}, []string{}},
	}

	for _, tt := range tests {
		movies, err := models.Movies.GetAll(tt.filters)
		if err != nil {
			t.Fatal(err)
		}

		names := []string{}
		for _, m := range movies {
			names = append(names, m.Name)
		}
		if !equal(names, tt.expected) {
			t.Errorf("%+v: got %v, want %v", tt.filters, names, tt.expected)
		}
	}
}

func TestMemoryDeletePerson(t *testing.T) {
	models := NewMemoryModels()

	movie := &Movie{Name: "Heat", Actors: Refs{{Name: "Al"}}}
	_ = models.Movies.Insert(movie)
	actorID := movie.Actors[0].ID

	err := models.Actors.Delete(actorID)
	if !errors.Is(err, ErrPersonInUse) {
		t.Fatalf("err = %v, want ErrPersonInUse", err)
	}

	movie.Actors = nil
	_ = models.Movies.Update(movie)

	if err := models.Actors.Delete(actorID); err != nil {
		t.Fatalf("delete unused actor: %v", err)
	}

	_, err = models.Actors.Get(actorID)
	if !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("err = %v, want ErrRecordNotFound", err)
	}

	err = models.Actors.Delete(actorID)
	if !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("second delete err = %v, want ErrRecordNotFound", err)
	}
}

func TestMemoryPersonKindsAreSeparate(t *testing.T) {
	models := NewMemoryModels()

	_ = models.Movies.Insert(&Movie{Name: "Heat", Technicians: Refs{{Name: "Dante"}}})

	actors, _ := models.Actors.GetAll()
	if len(actors) != 0 {
		t.Errorf("actors = %+v, want none", actors)
	}

	technicians, _ := models.Technicians.GetAll()
	if len(technicians) != 1 || technicians[0].Name != "Dante" {
		t.Errorf("technicians = %+v", technicians)
	}
}

func TestMemoryConcurrentInserts(t *testing.T) {
	models := NewMemoryModels()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// every name is inserted twice; exactly one of each pair wins.
			name := fmt.Sprintf("movie-%d", i/2)
			errs <- models.Movies.Insert(&Movie{Name: name, Actors: Refs{{Name: "extra"}}})
		}(i)
	}
	wg.Wait()
	close(errs)

	var duplicates int
	for err := range errs {
		if errors.Is(err, ErrDuplicateMovieName) {
			duplicates++
		} else if err != nil {
			t.Fatal(err)
		}
	}

	if duplicates != 10 {
		t.Errorf("got %d duplicate errors, want 10", duplicates)
	}

	movies, _ := models.Movies.GetAll(MovieFilters{})
	if len(movies) != 10 {
		t.Errorf("got %d movies, want 10", len(movies))
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
