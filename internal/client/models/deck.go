package models

import "time"

// SavedDeck is a deck remembered by the local library. EditSecret is empty
// for decks opened through a view link.
type SavedDeck struct {
	PublicID   string    `db:"public_id"`
	EditSecret string    `db:"edit_secret"`
	KeyToken   string    `db:"key_token"`
	Title      string    `db:"title"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// CanEdit reports whether the saved deck carries edit rights.
func (d *SavedDeck) CanEdit() bool {
	return d.EditSecret != ""
}
