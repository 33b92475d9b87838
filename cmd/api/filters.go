package main

import (
	"net/url"

	"huytran2000-hcmus/moviesinfo/internal/data"
)

func (app *application) readString(qs url.Values, key, defaultValue string) string {
	s := qs.Get(key)
	if s == "" {
		return defaultValue
	}

	return s
}

func (app *application) readMovieFilters(qs url.Values) data.MovieFilters {
	return data.MovieFilters{
		Actor:      app.readString(qs, "actor", ""),
		Director:   app.readString(qs, "director", ""),
		Technician: app.readString(qs, "technician", ""),
	}
}
