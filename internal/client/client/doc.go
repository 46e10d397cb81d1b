// Package client talks to the gophslides backend.
//
// The Client interface is what the client services depend on. GRPCClient
// implements it over the JSON-coded gRPC service: it tags every call with an
// x-request-id, bounds calls with the configured timeout and maps status
// codes to the sentinels in internal/common (ErrorNotFound,
// ErrorUnauthorized, ErrInvalidArgument, ErrExportDisabled) or ErrUnavailable.
//
// InitDatabase opens the local SQLite library of remembered decks and applies
// its embedded goose migrations.
package client
