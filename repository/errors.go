package repository

import "errors"

// ErrSuperheroNotFound is returned when no superhero row matches the requested id.
var ErrSuperheroNotFound = errors.New("superhero not found")

// ErrImageNotFound is returned when no image row matches the requested id.
var ErrImageNotFound = errors.New("superhero image not found")
