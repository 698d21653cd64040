package valueobjects

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// PlaceholderPrefix marks ids handed out for records that were never stored
const PlaceholderPrefix = "temp-"

// RecordID identifies a stored diagnosis record
type RecordID struct {
	value string
}

// NewRecordID creates a new random RecordID
func NewRecordID() RecordID {
	return RecordID{value: uuid.New().String()}
}

// NewPlaceholderRecordID creates an id for a result that could not be saved
func NewPlaceholderRecordID() RecordID {
	return RecordID{value: PlaceholderPrefix + uuid.New().String()}
}

// NewRecordIDFromString parses a stored id
func NewRecordIDFromString(id string) (RecordID, error) {
	if id == "" {
		return RecordID{}, errors.New("record ID cannot be empty")
	}
	raw := strings.TrimPrefix(id, PlaceholderPrefix)
	if _, err := uuid.Parse(raw); err != nil {
		return RecordID{}, errors.New("record ID must be a valid UUID")
	}
	return RecordID{value: id}, nil
}

// String returns the string representation of the RecordID
func (id RecordID) String() string {
	return id.value
}

// Equals checks if two RecordIDs are equal
func (id RecordID) Equals(other RecordID) bool {
	return id.value == other.value
}

// IsZero reports whether no id has been assigned yet
func (id RecordID) IsZero() bool {
	return id.value == ""
}

// IsPlaceholder reports whether the id was issued for an unsaved record
func (id RecordID) IsPlaceholder() bool {
	return strings.HasPrefix(id.value, PlaceholderPrefix)
}

// MarshalJSON implements json.Marshaler
func (id RecordID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *RecordID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("RecordID must be a string")
	}
	id.value = string(data[1 : len(data)-1])
	return nil
}
