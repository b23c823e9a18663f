package normalization

import (
	"strconv"
	"strings"
)

// AsString trims and returns the string representation of value when possible. Numbers are
// formatted without a fractional part when they are whole.
func AsString(value any) string {
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case float64:
		if typed == float64(int64(typed)) {
			return strconv.FormatInt(int64(typed), 10)
		}
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	default:
		return ""
	}
}

// FormatID renders a numeric wire identifier as a domain identifier. Zero means "unassigned".
func FormatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

// FormatOptionalID is FormatID for nullable wire identifiers.
func FormatOptionalID(id *int64) string {
	if id == nil {
		return ""
	}
	return FormatID(*id)
}

// ParseID converts a domain identifier back to its numeric wire form, returning 0 when the
// identifier is empty or not numeric.
func ParseID(id string) int64 {
	parsed, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return 0
	}
	return parsed
}

// OptionalID returns nil for unassigned identifiers so they are omitted on the wire.
func OptionalID(id string) *int64 {
	parsed := ParseID(id)
	if parsed == 0 {
		return nil
	}
	return &parsed
}

// Deref returns the pointed-to string trimmed, or "" for nil.
func Deref(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

// Ref returns nil for empty strings so optional fields are omitted on the wire.
func Ref(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// UnwrapData returns the content of a {"data": ...} envelope, or value itself when it is not
// wrapped or the data member is null.
func UnwrapData(value any) any {
	if typed, ok := value.(map[string]any); ok {
		if data, ok := typed["data"]; ok && data != nil {
			return data
		}
	}
	return value
}
