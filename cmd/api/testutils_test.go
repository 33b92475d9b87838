package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"huytran2000-hcmus/moviesinfo/internal/data"
	"huytran2000-hcmus/moviesinfo/internal/jsonlog"
)

type movieJSON struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	YearOfRelease *int32   `json:"year_of_release"`
	UserRatings   *float64 `json:"user_ratings"`
	DirectorName  *string  `json:"director_name"`
	Actors        []string `json:"actors"`
	Technicians   []string `json:"technicians"`
}

type personJSON struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Movies []string `json:"movies"`
}

func newTestApplication(t *testing.T) *application {
	t.Helper()

	app := &application{
		logger: jsonlog.New(io.Discard, jsonlog.NilLevel),
		models: data.NewMemoryModels(),
	}
	app.cfg.env = "development"

	return app
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, r)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	return rr
}

func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()

	err := json.Unmarshal(rr.Body.Bytes(), dst)
	if err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
}

func mustStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()

	if rr.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", rr.Code, want, rr.Body.String())
	}
}

func createMovie(t *testing.T, h http.Handler, body string) int64 {
	t.Helper()

	rr := do(t, h, http.MethodPost, "/movies", body)
	mustStatus(t, rr, http.StatusOK)

	var resp struct {
		Message string `json:"message"`
		ID      int64  `json:"id"`
	}
	decodeJSON(t, rr, &resp)

	return resp.ID
}

func listMovies(t *testing.T, h http.Handler, target string) []movieJSON {
	t.Helper()

	rr := do(t, h, http.MethodGet, target, "")
	mustStatus(t, rr, http.StatusOK)

	var movies []movieJSON
	decodeJSON(t, rr, &movies)

	return movies
}

func listPeople(t *testing.T, h http.Handler, target string) []personJSON {
	t.Helper()

	rr := do(t, h, http.MethodGet, target, "")
	mustStatus(t, rr, http.StatusOK)

	var people []personJSON
	decodeJSON(t, rr, &people)

	return people
}

func movieNames(movies []movieJSON) []string {
	names := []string{}
	for _, m := range movies {
		names = append(names, m.Name)
	}

	return names
}

func equalStrings(a, b []string) bool {
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
