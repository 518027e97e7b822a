package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Fingerprint derives a stable 24-hex-character identifier from a view's
// parameter map (spec §4.5): sort by key, render each entry as
// "{key}.{value}", join with ":", SHA-256, hex-encode, truncate to 24.
//
// Scalar values render via their direct representation; anything else
// (nested maps, slices) uses an unambiguous inspect-style rendering so the
// derivation stays deterministic across calls.
func Fingerprint(params map[string]Value) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"."+params[k].inspect())
	}
	joined := strings.Join(parts, ":")

	sum := sha256.Sum256([]byte(joined))
	return hex.EncodeToString(sum[:])[:24]
}
