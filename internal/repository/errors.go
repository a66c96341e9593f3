// Package repository holds raw-SQL data access for the booking domain.
// This file defines error values reused across repositories.  Sentinel
// values let handlers distinguish failure scenarios without inspecting
// driver errors: ErrDuplicate signals a unique-key violation that the API
// reports as a field-level validation failure, the per-entity not-found
// sentinels map to HTTP 404.
package repository

import (
	"errors"
	"strings"
)

// ErrDuplicate is returned when an insert or update violates a unique key,
// e.g. a second ticket for the same (flight, row, seat, order) tuple or a
// second airplane with the same (name, type) pair.
var ErrDuplicate = errors.New("duplicate record")

// isDuplicate reports whether err is a MySQL duplicate-key error (1062).
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "1062") || strings.Contains(msg, "duplicate entry")
}
