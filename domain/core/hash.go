package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// TableHash fingerprints a rendered table (headers + rows) so two generation
// runs can be compared for byte-identical output.
type TableHash Hash

func (h TableHash) String() string { return Hash(h).String() }

// ComputeTableHash hashes a header row followed by every data row in order.
// Row order matters: the generator is deterministic, so ordering is part of
// the contract.
func ComputeTableHash(headers []string, rows [][]string) TableHash {
	var data strings.Builder
	data.WriteString(strings.Join(headers, "\x1f"))
	data.WriteString("\x1e")
	for _, row := range rows {
		data.WriteString(strings.Join(row, "\x1f"))
		data.WriteString("\x1e")
	}
	return TableHash(NewHash([]byte(data.String())))
}
