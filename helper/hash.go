package helper

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// IntegrityStamp computes the verification token stored on an approved
// achievement: a SHA-256 over the record id and the approval timestamp.
// Not a ledger entry, just a stable hash students can quote and verifiers
// can re-check against the stored fields.
func IntegrityStamp(recordID string, verifiedAt time.Time) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s-%d", recordID, verifiedAt.UnixMilli())))
	return hex.EncodeToString(sum[:])
}
