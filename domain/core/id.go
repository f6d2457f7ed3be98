package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	InmateID     ID
	RunID        ID
	AssessmentID ID
)

// String conversions for domain IDs
func (id InmateID) String() string     { return ID(id).String() }
func (id RunID) String() string        { return ID(id).String() }
func (id AssessmentID) String() string { return ID(id).String() }

// ParseInmateID parses a string into InmateID
func ParseInmateID(s string) (InmateID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("inmate ID cannot be empty")
	}
	return InmateID(s), nil
}

// FormatInmateID builds the zero-padded inmate key used across all tables.
func FormatInmateID(index int) InmateID {
	return InmateID(fmt.Sprintf("INM%06d", index))
}

// FormatRecordID builds a child-record key with the given table prefix
// (BEH, OUT, NOTE, ER, TRN, LEAVE).
func FormatRecordID(prefix string, index int) ID {
	return ID(fmt.Sprintf("%s%06d", prefix, index))
}
