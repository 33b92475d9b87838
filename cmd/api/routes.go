package main

import (
	"expvar"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthcheckHandler)

	router.HandlerFunc(http.MethodGet, "/movies", app.listMoviesHandler)
	router.HandlerFunc(http.MethodPost, "/movies", app.createMovieHandler)
	router.HandlerFunc(http.MethodPost, "/movies/update/:id", app.updateMovieHandler)

	router.HandlerFunc(http.MethodGet, "/actors", app.listActorsHandler)
	router.HandlerFunc(http.MethodDelete, "/actors/:id", app.deleteActorHandler)

	router.HandlerFunc(http.MethodGet, "/technicians", app.listTechniciansHandler)
	router.HandlerFunc(http.MethodDelete, "/technicians/:id", app.deleteTechnicianHandler)

	router.Handler(http.MethodGet, "/debug/vars", expvar.Handler())

	return app.withMiddleware(router)
}

// withMiddleware wraps next in the chain shared by every route. requestID
// must stay outside recoverPanic: recovered panics are logged with the id.
func (app *application) withMiddleware(next http.Handler) http.Handler {
	return app.metrics(app.requestID(app.recoverPanic(app.enableCORS(app.rateLimit(next)))))
}
