package protocol

// Typed rejection codes for operations callers are expected to retry or
// handle. Per-tick movement collisions are not errors and never use these.
const (
	// Registration.
	ErrBlockedCell      = "E_BLOCKED_CELL"
	ErrOccupiedSameKind = "E_OCCUPIED_SAME_KIND"

	// Removal / lookup.
	ErrNoTarget = "E_NO_TARGET"

	// Construction-time configuration.
	ErrBadConfig = "E_BAD_CONFIG"
)

var knownCodes = map[string]struct{}{
	ErrBlockedCell:      {},
	ErrOccupiedSameKind: {},
	ErrNoTarget:         {},
	ErrBadConfig:        {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}
