package comments

import (
	"fmt"
	"time"
)

// timestampFormats are the date layouts the backend has been seen to emit.
var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// relativeTime renders a backend timestamp as a short "how long ago"
// label. Unparseable values are shown as-is.
func relativeTime(raw string) string {
	var t time.Time
	var err error
	for _, layout := range timestampFormats {
		t, err = time.Parse(layout, raw)
		if err == nil {
			break
		}
	}
	if err != nil || t.IsZero() {
		return raw
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	case d < 24*time.Hour:
		hrs := int(d.Hours())
		if hrs == 1 {
			return "1h ago"
		}
		return fmt.Sprintf("%dh ago", hrs)
	default:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1d ago"
		}
		return fmt.Sprintf("%dd ago", days)
	}
}
