package util

import (
    "strconv"
    "testing"
    "time"
)

func TestParseTimeRFC3339(t *testing.T) {
    s := "2024-10-10T10:10:10Z"
    got, ok := ParseTime(s)
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.UTC().Format(time.RFC3339) != s {
        t.Fatalf("unexpected time %v", got)
    }
}

func TestParseTimeRSS(t *testing.T) {
    for _, s := range []string{
        "Thu, 10 Oct 2024 10:10:10 GMT",
        "Thu, 10 Oct 2024 10:10:10 +0000",
        "Thu, 10 Oct 2024 10:10:10 Z",
    } {
        got, ok := ParseTime(s)
        if !ok {
            t.Fatalf("expected ok for %q", s)
        }
        if got.Unix() != time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix() {
            t.Fatalf("unexpected time %v for %q", got, s)
        }
    }
}

func TestParseTimeUnix(t *testing.T) {
    ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
    got, ok := ParseTime(strconv.FormatInt(ts, 10))
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.Unix() != ts {
        t.Fatalf("unexpected unix %v", got.Unix())
    }
}

func TestUnixMilliOrZero(t *testing.T) {
    if got := UnixMilliOrZero("yesterday-ish"); got != 0 {
        t.Fatalf("expected 0, got %d", got)
    }
    if got := UnixMilliOrZero("2024-10-10T10:10:10Z"); got != 1728555010000 {
        t.Fatalf("unexpected millis %d", got)
    }
}

func TestAlignFromTo(t *testing.T) {
    from := time.Date(2024, 1, 1, 10, 7, 30, 0, time.UTC)
    f, to := AlignFromTo(from, from.Add(time.Hour), 5*time.Minute)
    if f.Minute() != 5 || to.Minute() != 5 {
        t.Fatalf("unexpected alignment %v %v", f, to)
    }
}
