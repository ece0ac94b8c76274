// Package audit persists one record per classification for offline review
// of rule hit-rates and model drift. The sink is optional: when no DSN is
// configured the engine runs without it, and writes are asynchronous so a
// slow database never adds latency to the classification path.
package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// Record is one classification event. The raw message is never stored,
// only its hash, so the audit table carries no user text.
type Record struct {
	ID         uuid.UUID
	MessageSHA string
	Label      string
	Confidence float64
	Reason     string
	Rule       string // deterministic rule that decided, empty for model decisions
	Cached     bool
	LatencyMs  float64
	CreatedAt  time.Time
}

// NewRecord builds a record for a classified message.
func NewRecord(message, label string, confidence float64, reason, rule string, cached bool, latency time.Duration) Record {
	sum := sha256.Sum256([]byte(message))
	return Record{
		ID:         uuid.New(),
		MessageSHA: hex.EncodeToString(sum[:]),
		Label:      label,
		Confidence: confidence,
		Reason:     reason,
		Rule:       rule,
		Cached:     cached,
		LatencyMs:  float64(latency.Microseconds()) / 1000.0,
		CreatedAt:  time.Now().UTC(),
	}
}

// Sink persists audit records.
type Sink interface {
	Write(ctx context.Context, rec Record) error
	Close()
}
