package common

import (
	"strings"

	"github.com/google/uuid"
)

// ID is an opaque entity identifier. IDs are generated server-side and never
// interpreted beyond equality.
type ID string

func NewID() ID {
	return ID(uuid.NewString())
}

func ParseID(value string) (ID, error) {
	trimmed := strings.TrimSpace(value)
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return "", err
	}
	return ID(parsed.String()), nil
}

func (id ID) String() string {
	return string(id)
}
