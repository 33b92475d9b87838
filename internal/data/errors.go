package data

import (
	"errors"
	"time"
)

const defaultTimeout = 3 * time.Second

var (
	ErrRecordNotFound     = errors.New("record not found")
	ErrDuplicateMovieName = errors.New("duplicate movie name")
	ErrPersonInUse        = errors.New("person is associated with one or more movies")
)
