package db

import "errors"

// ErrNotFound is returned when a catalog row does not exist. Repositories
// translate pgx.ErrNoRows into it so handlers can map lookups of unknown
// restaurants to 404s without importing pgx.
var ErrNotFound = errors.New("record not found")
