package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"huytran2000-hcmus/moviesinfo/internal/data"
)

func (app *application) listActorsHandler(w http.ResponseWriter, r *http.Request) {
	app.listPeople(w, r, app.models.Actors)
}

func (app *application) listTechniciansHandler(w http.ResponseWriter, r *http.Request) {
	app.listPeople(w, r, app.models.Technicians)
}

func (app *application) deleteActorHandler(w http.ResponseWriter, r *http.Request) {
	app.deletePerson(w, r, app.models.Actors, "Actor")
}

func (app *application) deleteTechnicianHandler(w http.ResponseWriter, r *http.Request) {
	app.deletePerson(w, r, app.models.Technicians, "Technician")
}

func (app *application) listPeople(w http.ResponseWriter, r *http.Request, store data.PersonStore) {
	people, err := store.GetAll()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, nil, people)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deletePerson refuses to delete a person still credited on any movie.
func (app *application) deletePerson(w http.ResponseWriter, r *http.Request, store data.PersonStore, kind string) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	person, err := store.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if len(person.Movies) > 0 {
		app.personInUseResponse(w, r, strings.ToLower(kind))
		return
	}

	err = store.Delete(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrPersonInUse):
			app.personInUseResponse(w, r, strings.ToLower(kind))
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, nil, envelope{"message": fmt.Sprintf("%s deleted successfully", kind)})
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
