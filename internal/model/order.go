package model

import "time"

// Order is a purchase transaction owned by the user who created it.  The
// user reference is nullable: deleting a user keeps their orders as history
// with the link cleared.  CreatedAt is set once at creation and never
// updated.
type Order struct {
	ID        uint64    // orders.id
	UserID    *uint64   // orders.user_id (nullable)
	CreatedAt time.Time // orders.created_at
}
