package report

import (
	"crypto/sha256"
	"encoding/hex"
)

// ExplanationID derives the stable identifier CoreOutput.explanation_id
// from the exact input plan bytes: byte-identical input
// always yields the same id, with no external state involved.
func ExplanationID(planBytes []byte) string {
	sum := sha256.Sum256(planBytes)
	return hex.EncodeToString(sum[:])[:16]
}
