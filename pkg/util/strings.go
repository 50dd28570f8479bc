package util

import (
    "strconv"
    "strings"
)

// ParseNumber parses display-formatted numbers such as "$1,234.50",
// "+2.35%" or "-0.12". Empty strings, "N/A" and "--" are not numbers.
func ParseNumber(s string) (float64, bool) {
    s = strings.TrimSpace(s)
    switch strings.ToUpper(s) {
    case "", "N/A", "NA", "--", "-":
        return 0, false
    }
    s = strings.NewReplacer("$", "", ",", "", "%", "", "+", "", " ", "").Replace(s)
    v, err := strconv.ParseFloat(s, 64)
    if err != nil {
        return 0, false
    }
    return v, true
}

// SplitSymbols turns "aapl, MSFT,,tsla" into ["AAPL" "MSFT" "TSLA"], keeping
// first-seen order and dropping duplicates.
func SplitSymbols(s string) []string {
    if strings.TrimSpace(s) == "" {
        return nil
    }
    seen := make(map[string]struct{})
    var out []string
    for _, p := range strings.Split(s, ",") {
        sym := strings.ToUpper(strings.TrimSpace(p))
        if sym == "" {
            continue
        }
        if _, ok := seen[sym]; ok {
            continue
        }
        seen[sym] = struct{}{}
        out = append(out, sym)
    }
    return out
}
