package screens

import (
	"time"

	"github.com/vistapra/content-hub-go/internal/content"
)

// Screen is one stored screen document. The payload carries whatever
// nested structure the operator has built up; only slug and kind are
// fixed columns.
type Screen struct {
	Slug      string
	Kind      string
	Payload   content.Payload
	UpdatedAt time.Time
}

// CreateScreenInput creates a document for a slug that was never
// bootstrapped (the seed covers the built-in slugs).
type CreateScreenInput struct {
	Slug    string          `json:"slug"`
	Kind    string          `json:"kind"`
	Payload content.Payload `json:"payload"`
}

// ReplacePayloadInput is the body of a whole-payload replace. Partial
// edits are a client concern: the transport only ever replaces wholesale.
type ReplacePayloadInput struct {
	Payload content.Payload `json:"payload"`
}

// AppendItemInput is the body of the generic list-append operation.
type AppendItemInput struct {
	ListKey string        `json:"list_key"`
	Item    content.Value `json:"item"`
}
