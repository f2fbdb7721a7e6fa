package convert

import (
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"smartdoc/internal/model"
)

// SafeGet walks a dotted path over a possibly-missing object graph and returns
// the value at the end, or fallback if any segment is absent, nil, or of the
// wrong type. It never panics.
func SafeGet[T any](obj any, path string, fallback T) T {
	current := obj
	for _, key := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return fallback
		}
		current = m[key]
	}
	if current == nil {
		return fallback
	}
	value, ok := current.(T)
	if !ok {
		return fallback
	}
	return value
}

// FormatDateSafe renders a timestamp for display. Absent input yields "N/A",
// an unparseable string yields "Invalid Date". Dates are formatted dd/mm/yyyy
// to match the dashboard's vi-VN locale.
func FormatDateSafe(v any) string {
	switch t := v.(type) {
	case nil:
		return "N/A"
	case time.Time:
		if t.IsZero() {
			return "N/A"
		}
		return t.Format("02/01/2006")
	case string:
		if t == "" {
			return "N/A"
		}
		parsed, ok := ParseTime(t)
		if !ok {
			return "Invalid Date"
		}
		return parsed.Format("02/01/2006")
	default:
		return "Invalid Date"
	}
}

var sizeUnits = []string{"B", "KB", "MB", "GB"}

// FormatFileSize renders a byte count using binary units with up to two
// decimals. A string that already carries a unit suffix is returned as-is;
// a numeric string is parsed first.
func FormatFileSize(v any) string {
	var bytes float64
	switch s := v.(type) {
	case string:
		if strings.Contains(s, "B") {
			return s
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return s
		}
		bytes = parsed
	case int:
		bytes = float64(s)
	case int64:
		bytes = float64(s)
	case float64:
		bytes = s
	default:
		return "0 B"
	}

	if bytes == 0 {
		return "0 B"
	}

	i := int(math.Floor(math.Log(bytes) / math.Log(1024)))
	if i < 0 {
		i = 0
	}
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}
	value := math.Round(bytes/math.Pow(1024, float64(i))*100) / 100
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + sizeUnits[i]
}

// HasData reports whether a response succeeded and actually carries a payload.
// Callers should branch on this before touching Data.
func HasData[T any](resp model.Response[T]) bool {
	return resp.Success && resp.Data != nil
}

// HandleResponse invokes exactly one of the two callbacks based on HasData and
// reports which branch fired. This is the recommended call-site pattern for
// consuming any transport result.
func HandleResponse[T any](resp model.Response[T], onSuccess func(T), onError func(string)) bool {
	if HasData(resp) {
		onSuccess(*resp.Data)
		return true
	}
	msg := resp.Error
	if msg == "" {
		msg = "Unknown error occurred"
	}
	log.Printf("api error: %s", msg)
	if onError != nil {
		onError(msg)
	}
	return false
}
