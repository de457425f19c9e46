package gateway

import (
	"time"

	"github.com/tidwall/gjson"
)

// DateLayout is the display format of every date a gateway returns.
const DateLayout = "02/01/2006 15:04"

// Location is the zone dates are displayed in.
var Location = time.Local

var inputLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	time.DateTime,
	time.DateOnly,
}

// FormatDate renders a required date field. Strings in the usual API layouts
// and epoch milliseconds are accepted.
func FormatDate(obj gjson.Result, path string) (string, error) {
	v, err := Require(obj, path)
	if err != nil {
		return "", err
	}
	t, ok := parseDate(v)
	if !ok {
		return "", malformed(path, "invalid date "+v.String())
	}
	return t.In(Location).Format(DateLayout), nil
}

// FormatOptionalDate renders a date field that may be absent, returning "".
func FormatOptionalDate(obj gjson.Result, path string) (string, error) {
	if v := obj.Get(path); !v.Exists() || v.Type == gjson.Null || v.String() == "" {
		return "", nil
	}
	return FormatDate(obj, path)
}

func parseDate(v gjson.Result) (time.Time, bool) {
	if v.Type == gjson.Number {
		return time.UnixMilli(v.Int()), true
	}
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, v.String()); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DayStamp is the UTC calendar day of t, as the API expects for createdAt and
// updatedAt on writes.
func DayStamp(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}
