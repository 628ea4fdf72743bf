package normalize

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Truthy reports whether a JSON value counts as present: null, false, 0, ""
// and a missing value do not; everything else, including [] and {}, does.
func Truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.False, gjson.Null:
		return false
	case gjson.Number:
		return r.Num != 0
	case gjson.String:
		return r.Str != ""
	case gjson.True, gjson.JSON:
		return true
	}
	return false
}

// Number converts a value with loose numeric semantics: null and false are
// 0, true is 1, strings are trimmed and parsed (empty is 0, 0x is hex).
// ok is false when the value has no numeric reading (missing, objects,
// arrays, unparseable text).
func Number(r gjson.Result) (float64, bool) {
	if !r.Exists() {
		return 0, false
	}
	switch r.Type {
	case gjson.Null, gjson.False:
		return 0, true
	case gjson.True:
		return 1, true
	case gjson.Number:
		return r.Num, true
	case gjson.String:
		return parseNumericString(r.Str)
	}
	return 0, false
}

func parseNumericString(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "0x") {
		v, err := strconv.ParseUint(s[2:], 16, 64)
		if err != nil {
			return 0, false
		}
		return float64(v), true
	}
	if strings.ContainsAny(lower, "in_") {
		// rejects inf, nan and digit separators, which ParseFloat would accept
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseInt reads the leading base-10 integer of the value's text form,
// ignoring leading whitespace. ok is false when there is none.
func ParseInt(r gjson.Result) (int, bool) {
	var s string
	switch r.Type {
	case gjson.String:
		s = r.Str
	case gjson.Number:
		s = r.Raw
	default:
		return 0, false
	}

	s = strings.TrimLeft(s, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return v, true
}

// JSONNumber renders a numeric conversion as a JSON number literal.
func JSONNumber(v float64) json.Number {
	return json.Number(strconv.FormatFloat(v, 'f', -1, 64))
}

// Raw returns the value's JSON text, nil when the value is missing.
func Raw(r gjson.Result) json.RawMessage {
	if !r.Exists() {
		return nil
	}
	return json.RawMessage(r.Raw)
}

// RawOrNull returns the value's JSON text when truthy and null otherwise.
func RawOrNull(r gjson.Result) json.RawMessage {
	if !Truthy(r) {
		return json.RawMessage("null")
	}
	return json.RawMessage(r.Raw)
}

// RawOr returns the value's JSON text when truthy and def otherwise.
func RawOr(r gjson.Result, def string) json.RawMessage {
	if !Truthy(r) {
		return json.RawMessage(def)
	}
	return json.RawMessage(r.Raw)
}
