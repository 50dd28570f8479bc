package newsmerge

import (
	"sort"
	"strings"
	"unicode"

	"MoverScan/internal/domain/models"
	"MoverScan/internal/services/batch"
)

const (
	// MaxItems caps the merged output.
	MaxItems = 20
	// KeyLength is the title prefix, in characters, that identifies a story.
	KeyLength = 60
)

// Key returns the dedup key for a headline: the lowercased first KeyLength
// characters with punctuation dropped and whitespace collapsed.
func Key(title string) string {
	r := []rune(strings.ToLower(strings.TrimSpace(title)))
	if len(r) > KeyLength {
		r = r[:KeyLength]
	}
	var b strings.Builder
	space := false
	for _, c := range r {
		switch {
		case unicode.IsLetter(c) || unicode.IsDigit(c):
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(c)
		case unicode.IsSpace(c):
			space = true
		}
	}
	return b.String()
}

// Merge folds feed outcomes in the order given. The first item seen for a key
// wins; failed feeds contribute nothing. The result is sorted newest first,
// with undated items last, and capped at limit (never above MaxItems).
func Merge(outcomes []batch.Outcome[[]models.NewsItem], limit int) []models.NewsItem {
	if limit <= 0 || limit > MaxItems {
		limit = MaxItems
	}
	seen := make(map[string]struct{})
	out := make([]models.NewsItem, 0, MaxItems)
	for _, o := range outcomes {
		if !o.OK() {
			continue
		}
		for _, item := range o.Value {
			k := Key(item.Title)
			if k == "" {
				continue
			}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt > out[j].PublishedAt
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
