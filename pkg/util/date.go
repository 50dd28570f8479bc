package util

import (
    "strconv"
    "strings"
    "time"
)

// feedLayouts covers the date formats seen in RSS and provider payloads.
var feedLayouts = []string{
    time.RFC3339,
    time.RFC3339Nano,
    time.RFC1123Z,
    time.RFC1123,
    "Mon, 2 Jan 2006 15:04:05 -0700",
    "Mon, 2 Jan 2006 15:04:05 MST",
    "Mon, 02 Jan 2006 15:04:05 Z",
    time.RFC822Z,
    time.RFC822,
    "2006-01-02 15:04:05",
    "2006-01-02",
}

// ParseTime tries RFC3339, the RSS (RFC1123/RFC822) variants and unix
// seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
    s = strings.TrimSpace(s)
    if s == "" {
        return time.Time{}, false
    }
    for _, layout := range feedLayouts {
        if t, err := time.Parse(layout, s); err == nil {
            return t, true
        }
    }
    if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
        return time.Unix(ts, 0), true
    }
    return time.Time{}, false
}

// UnixMilliOrZero returns the unix milliseconds of s, or 0 if unparsable.
func UnixMilliOrZero(s string) int64 {
    if t, ok := ParseTime(s); ok {
        return t.UnixMilli()
    }
    return 0
}

// AlignFromTo rounds the time range down to bar boundaries.
func AlignFromTo(from, to time.Time, bar time.Duration) (time.Time, time.Time) {
    if bar <= 0 {
        bar = time.Minute
    }
    return from.Truncate(bar), to.Truncate(bar)
}
