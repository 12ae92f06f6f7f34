// file: internals/helpers/slug.go
package helper

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"gorm.io/gorm"
)

const DefaultSlugMaxLen = 160

// SlugOptions describes how slug uniqueness is checked in the DB.
type SlugOptions struct {
	Table      string // e.g. "editions"
	SlugColumn string // e.g. "edition_slug"

	// Extra filters scoping the uniqueness check.
	Filters map[string]any

	// Max slug length including the -2, -3 suffix. 0 = DefaultSlugMaxLen.
	MaxLen int

	// Fallback base when the input normalizes to empty.
	DefaultBase string
}

// GenerateSlug normalizes a string into a slug:
// lower-case, non-alnum runs become a single "-", trimmed at both ends.
func GenerateSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
		} else if !lastDash {
			b.WriteRune('-')
			lastDash = true
		}
	}
	out := strings.Trim(b.String(), "-")
	return regexp.MustCompile(`-+`).ReplaceAllString(out, "-")
}

func cutToLen(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return strings.Trim(s, "-")
	}
	return strings.Trim(s[:n], "-")
}

func slugTaken(db *gorm.DB, opts SlugOptions, candidate string) (bool, error) {
	if opts.Table == "" || opts.SlugColumn == "" {
		return false, errors.New("slug options: table/slug column required")
	}

	q := db.Table(opts.Table).
		Where(fmt.Sprintf("lower(%s) = lower(?)", opts.SlugColumn), candidate)
	for k, v := range opts.Filters {
		q = q.Where(fmt.Sprintf("%s = ?", k), v)
	}

	var cnt int64
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// GenerateUniqueSlug builds a slug from base (or DefaultBase), unique
// case-insensitively within the scope of Filters. On collision it tries
// base-2, base-3, ... until free.
func GenerateUniqueSlug(db *gorm.DB, opts SlugOptions, base string) (string, error) {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = DefaultSlugMaxLen
	}

	base = GenerateSlug(strings.TrimSpace(base))
	if base == "" {
		base = GenerateSlug(opts.DefaultBase)
	}
	if base == "" {
		base = "x"
	}
	if len(base) > maxLen {
		base = cutToLen(base, maxLen)
	}

	taken, err := slugTaken(db, opts, base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}

	for i := 2; i < 10000; i++ {
		suf := fmt.Sprintf("-%d", i)
		candidate := base
		if len(candidate)+len(suf) > maxLen {
			cut := maxLen - len(suf)
			if cut < 1 {
				cut = 1
			}
			candidate = cutToLen(candidate, cut)
			if candidate == "" {
				candidate = "x"
			}
		}
		candidate += suf

		taken, err = slugTaken(db, opts, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", errors.New("failed to generate unique slug after many attempts")
}
