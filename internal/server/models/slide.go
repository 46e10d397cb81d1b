package models

// Slide is one encrypted slide. Content is an opaque ciphertext blob that the
// server stores and returns verbatim.
type Slide struct {
	ID             int64  `db:"id"`
	PresentationID int64  `db:"presentation_id"`
	Content        string `db:"content"`
	Order          int    `db:"slide_order"`
}

// SlideInput is one element of the target slide set submitted for
// reconciliation. A nil or non-positive ID marks a slide that does not
// exist yet.
type SlideInput struct {
	ID      *int64
	Content string
	Order   int
}

// Existing reports whether the input refers to a persisted slide.
func (s SlideInput) Existing() bool {
	return s.ID != nil && *s.ID > 0
}
