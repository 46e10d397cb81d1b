package common

// DefaultTheme is the stylesheet assigned to new presentations.
const DefaultTheme = "black.css"

// Token shapes for public identifiers and edit secrets.
const (
	PublicIDLength   = 8
	EditSecretLength = 12

	// TokenAlphabet is URL-safe, so tokens can be placed in paths unescaped.
	TokenAlphabet = "_-0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// WelcomeSlide is the plaintext of the first slide of a new deck.
const WelcomeSlide = "# Welcome to your presentation!"

// RequestIDHeader is the gRPC metadata key carrying the correlation id of a call.
const RequestIDHeader = "x-request-id"
