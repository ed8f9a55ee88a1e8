// Package repository defines the visit store and the error values shared
// with its callers.
package repository

import "errors"

// ErrUnavailable is returned when no database connection could be
// established.  Handlers translate it into the degraded status page rather
// than an error response.
var ErrUnavailable = errors.New("database unavailable")
