// Package models defines the client-side view of presentations and the
// decks the CLI remembers locally.
package models

import "time"

// Slide is one slide as stored by the server. Content is ciphertext unless
// stated otherwise by the caller.
type Slide struct {
	ID      int64
	Content string
	Order   int32
}

// SlideInput is one element of an update. A nil ID asks the server to insert
// a new slide.
type SlideInput struct {
	ID      *int64
	Content string
	Order   int32
}

type Presentation struct {
	PublicID  string
	Theme     string
	CreatedAt time.Time
	Slides    []Slide
}

// Contents returns the slide payloads in slide order.
func (p *Presentation) Contents() []string {
	out := make([]string, len(p.Slides))
	for i, s := range p.Slides {
		out[i] = s.Content
	}
	return out
}

// Created is what the server hands back for a new presentation.
type Created struct {
	PublicID   string
	EditSecret string
}
