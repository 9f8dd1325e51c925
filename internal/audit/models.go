// Package audit records calculation and load activity without retaining
// personal data: identities are stored as SHA-256 digests only.
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID           string
	Timestamp    time.Time
	Action       string
	IdentityHash string
	RequestID    string
	Outcome      string
	Detail       string
}

// Actions emitted by the services.
const (
	ActionCalculation    = "benefit.calculation"
	ActionSnapshotReload = "records.snapshot_reload"
)

// Outcomes.
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

// HashIdentity digests an identity number for audit storage. Raw identity
// numbers must never reach the audit trail.
func HashIdentity(identityNumber string) string {
	sum := sha256.Sum256([]byte(identityNumber))
	return hex.EncodeToString(sum[:])
}
