package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"huytran2000-hcmus/moviesinfo/internal/data"
	"huytran2000-hcmus/moviesinfo/internal/validator"
)

type personInput struct {
	Name string `json:"name"`
}

func toRefs(people []personInput) data.Refs {
	refs := make(data.Refs, 0, len(people))
	for _, p := range people {
		refs = append(refs, data.Ref{Name: p.Name})
	}

	return refs
}

// readRefEntries decodes the object entries of an association list. Entries
// that are not JSON objects are skipped.
func readRefEntries(entries []json.RawMessage) (data.Refs, error) {
	refs := data.Refs{}
	for i, raw := range entries {
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || raw[0] != '{' {
			continue
		}

		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()

		var p personInput
		err := dec.Decode(&p)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}

		refs = append(refs, data.Ref{Name: p.Name})
	}

	return refs, nil
}

// optional records whether a key was present in the request body. A present
// null leaves Set true and Value nil.
type optional[T any] struct {
	Set   bool
	Value *T
}

func (o *optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Value = nil
		return nil
	}

	var v T
	err := json.Unmarshal(b, &v)
	if err != nil {
		return err
	}

	o.Value = &v
	return nil
}

func (app *application) listMoviesHandler(w http.ResponseWriter, r *http.Request) {
	filters := app.readMovieFilters(r.URL.Query())

	movies, err := app.models.Movies.GetAll(filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, nil, movies)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) createMovieHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name          string        `json:"name"`
		YearOfRelease *int32        `json:"year_of_release"`
		UserRatings   *float64      `json:"user_ratings"`
		DirectorName  *string       `json:"director_name"`
		Actors        []personInput `json:"actors"`
		Technicians   []personInput `json:"technicians"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movie := &data.Movie{
		Name:          input.Name,
		YearOfRelease: input.YearOfRelease,
		UserRatings:   input.UserRatings,
		DirectorName:  input.DirectorName,
		Actors:        toRefs(input.Actors),
		Technicians:   toRefs(input.Technicians),
	}

	v := validator.New()
	data.ValidateMovie(v, movie)
	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	err = app.models.Movies.Insert(movie)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrDuplicateMovieName):
			v.AddFieldError("name", "a movie with this name already exists")
			app.failedValidationResponse(w, r, v.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, nil, envelope{"message": "Movie added successfully", "id": movie.ID})
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateMovieHandler overwrites the scalar fields present in the body, null
// included, and rebuilds both association lists from it. A missing actors or
// technicians key leaves the movie with none.
func (app *application) updateMovieHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	movie, err := app.models.Movies.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	var input struct {
		Name          optional[string]  `json:"name"`
		YearOfRelease optional[int32]   `json:"year_of_release"`
		UserRatings   optional[float64] `json:"user_ratings"`
		DirectorName  optional[string]  `json:"director_name"`
		Actors        []json.RawMessage `json:"actors"`
		Technicians   []json.RawMessage `json:"technicians"`
	}

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if input.Name.Set {
		movie.Name = ""
		if input.Name.Value != nil {
			movie.Name = *input.Name.Value
		}
	}

	if input.YearOfRelease.Set {
		movie.YearOfRelease = input.YearOfRelease.Value
	}

	if input.UserRatings.Set {
		movie.UserRatings = input.UserRatings.Value
	}

	if input.DirectorName.Set {
		movie.DirectorName = input.DirectorName.Value
	}

	movie.Actors, err = readRefEntries(input.Actors)
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("actors: %w", err))
		return
	}

	movie.Technicians, err = readRefEntries(input.Technicians)
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("technicians: %w", err))
		return
	}

	v := validator.New()
	data.ValidateMovie(v, movie)
	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	err = app.models.Movies.Update(movie)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrDuplicateMovieName):
			v.AddFieldError("name", "a movie with this name already exists")
			app.failedValidationResponse(w, r, v.Errors)
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, fmt.Errorf("update movie handler: %w", err))
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, nil, envelope{"message": "Movie updated successfully"})
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
