package valueobjects

import (
	"encoding/json"
	"strings"
)

// DangerLevel is the coarse severity attached to a condition
type DangerLevel int

const (
	DangerUnknown DangerLevel = iota
	DangerLow
	DangerModerate
	DangerHigh
)

// Style tokens used by clients to render a danger badge
const (
	ColorClassRed    = "bg-red-100 text-red-800 border-red-200"
	ColorClassOrange = "bg-orange-100 text-orange-800 border-orange-200"
	ColorClassGreen  = "bg-green-100 text-green-800 border-green-200"
	ColorClassGray   = "bg-gray-100 text-gray-800 border-gray-200"
)

// ParseDangerLevel converts a label to a DangerLevel. Unrecognised labels map to DangerUnknown.
func ParseDangerLevel(s string) DangerLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return DangerLow
	case "moderate":
		return DangerModerate
	case "high":
		return DangerHigh
	default:
		return DangerUnknown
	}
}

// String returns the display label
func (l DangerLevel) String() string {
	switch l {
	case DangerLow:
		return "Low"
	case DangerModerate:
		return "Moderate"
	case DangerHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// ColorClass returns the style token for the level
func (l DangerLevel) ColorClass() string {
	return ColorClassFor(l)
}

// ColorClassFor maps a danger level to its style token. Levels outside the
// known set fall through to gray.
func ColorClassFor(level DangerLevel) string {
	switch level {
	case DangerHigh:
		return ColorClassRed
	case DangerModerate:
		return ColorClassOrange
	case DangerLow:
		return ColorClassGreen
	default:
		return ColorClassGray
	}
}

// MarshalJSON implements json.Marshaler
func (l DangerLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (l *DangerLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*l = ParseDangerLevel(s)
	return nil
}
