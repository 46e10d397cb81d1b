// Package decks is the local library of decks the CLI has created or opened.
//
// Each row keeps what is needed to rebuild the share links of a deck: the
// public id, the key token and, for decks you can edit, the edit secret.
// The library lives on the user's machine only and is never synchronised.
//
// SQLiteRepository works over dbx.DBTX, so it runs on a *sqlx.DB or inside a
// transaction.
package decks
