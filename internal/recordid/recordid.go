// Package recordid provides a deterministic QA record ID from the question
// text. Re-ingesting the same question yields the same ID, which makes
// training idempotent.
package recordid

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/digiraksha/mitra/pkg/utils"
)

const prefix = "qa:"

// QARecordID returns a stable record ID for a question. Case and surrounding
// whitespace do not affect the ID.
func QARecordID(question string) string {
	normalized := utils.NormalizeText(question)
	hash := sha256.Sum256([]byte(normalized))
	return prefix + hex.EncodeToString(hash[:])
}
