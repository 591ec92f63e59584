package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Decision is the fully assembled outcome for one (application, framework)
// pair: the trust evaluation, the regulatory compliance check, and a
// snapshot of the application they were computed from. Decisions are
// immutable once assembled.
type Decision struct {
	// ID uniquely identifies this decision (a UUID).
	ID string `json:"decision_id"`

	// ApplicationID identifies the loan application that was evaluated.
	ApplicationID string `json:"application_id"`

	// Framework is the regulatory framework the decision was made under.
	Framework string `json:"framework"`

	// CreatedAt records when the decision was assembled.
	CreatedAt time.Time `json:"timestamp"`

	// Trust is the multi-factor trust evaluation result.
	Trust TrustReport `json:"trust"`

	// Compliance is the regulatory framework compliance result.
	Compliance ComplianceReport `json:"compliance"`

	// Application is a snapshot of the evaluated record's fields.
	Application map[string]any `json:"application_data"`

	// Checksum is the hex-encoded SHA-256 digest of the decision content,
	// computed at assembly time and verified on demand.
	Checksum string `json:"checksum"`
}

// ComputeChecksum returns the hex-encoded SHA-256 digest of the decision's
// canonical JSON form, excluding the checksum field itself. Map keys are
// sorted by encoding/json, so the digest is stable for equal content.
func (d Decision) ComputeChecksum() (string, error) {
	clone := d
	clone.Checksum = ""
	data, err := json.Marshal(clone)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Verify recomputes the checksum and reports whether it matches the one
// recorded at assembly time.
func (d Decision) Verify() (bool, error) {
	sum, err := d.ComputeChecksum()
	if err != nil {
		return false, err
	}
	return sum == d.Checksum, nil
}
