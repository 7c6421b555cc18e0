package harness

import "github.com/google/uuid"

// RunIDGenerator generates scenario run identifiers.
type RunIDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 run ids.
//
// UUIDv7 provides:
//   - Time-ordered: ids sort by creation time
//   - Globally unique: no coordination needed
//   - Standard format: 36-character string
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a new UUIDv7 string.
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
