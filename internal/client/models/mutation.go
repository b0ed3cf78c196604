package models

import (
	"encoding/json"
	"time"
)

// MutationKind classifies a queued write.
type MutationKind string

const (
	MutationAdd    MutationKind = "add"
	MutationUpdate MutationKind = "update"
	MutationDelete MutationKind = "delete"
)

// QueuedMutation is one pending write recorded while offline. Seq is the
// storage-assigned ordering key; mutations for a table are replayed in
// ascending Seq order. TargetID is the entity the mutation refers to (a
// provisional id for offline creations), and Payload carries everything
// needed to replay: the full entity for add/update, nothing for delete.
// A row is never mutated in place; it is removed once its remote call
// succeeds.
type QueuedMutation struct {
	Seq        int64
	Kind       MutationKind
	Table      string
	TargetID   string
	Payload    json.RawMessage
	EnqueuedAt time.Time
}
