package services

import "errors"

var (
	ErrEditLinkRequired = errors.New("an edit link is required for this operation")
	ErrEmptyDeck        = errors.New("deck has no slides")
	ErrEmptyTheme       = errors.New("theme must not be empty")
)
