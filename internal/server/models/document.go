package models

import (
	"encoding/json"
	"time"
)

// Document is a schemaless record in a named collection.
type Document struct {
	ID         string
	Collection string
	Body       json.RawMessage
	CreatedAt  time.Time
}
