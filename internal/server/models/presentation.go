// Package models defines server-side data models persisted in the database.
package models

import "time"

// Presentation is a deck and its ordered slides. PublicID is the only
// identifier exposed to clients; ID is owned by the database.
type Presentation struct {
	ID            int64     `db:"id"`
	PublicID      string    `db:"public_id"`
	HashedEditKey string    `db:"hashed_edit_key"`
	Theme         string    `db:"theme"`
	CreatedAt     time.Time `db:"created_at"`

	// Slides is sorted ascending by Order, ties by ID.
	Slides []*Slide `db:"-"`
}
