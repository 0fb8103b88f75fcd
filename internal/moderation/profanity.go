// Package moderation masks banned words in user text before it is shown.
package moderation

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Filter replaces each banned word with '*' repeated for its rune length.
// ASCII words only match on word boundaries; other scripts match as plain
// substrings since they may not separate words with spaces.
type Filter struct {
	patterns []*regexp.Regexp
}

// DefaultBannedWords is the built-in list; PROFANITY_WORDS extends it.
var DefaultBannedWords = []string{
	"fuck", "fucking", "fucker", "motherfucker", "shit", "bullshit",
	"bastard", "bitch", "sonofabitch", "dick", "cock", "pussy", "cunt",
	"asshole", "dumbass", "jackass", "retard", "slut", "whore",
	"wanker", "twat", "prick", "arsehole", "bollocks", "douchebag",
	"cocksucker", "shithead", "dipshit", "dumbfuck", "fuckface", "shitbag",
}

// NewFilter builds a filter from words plus extra, a comma-separated list.
func NewFilter(words []string, extra string) *Filter {
	all := append([]string{}, words...)
	for _, w := range strings.Split(extra, ",") {
		all = append(all, w)
	}

	uniq := make([]string, 0, len(all))
	seen := map[string]struct{}{}
	for _, w := range all {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		key := strings.ToLower(w)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		uniq = append(uniq, w)
	}
	// longer words first so a short entry never masks half of a longer one
	sort.SliceStable(uniq, func(i, j int) bool {
		return len([]rune(uniq[i])) > len([]rune(uniq[j]))
	})

	pats := make([]*regexp.Regexp, 0, len(uniq))
	for _, w := range uniq {
		pattern := regexp.QuoteMeta(w)
		if isASCIIWord(w) {
			pattern = `(?i)\b` + pattern + `\b`
		}
		pats = append(pats, regexp.MustCompile(pattern))
	}
	return &Filter{patterns: pats}
}

func (f *Filter) Mask(s string) string {
	if f == nil || len(f.patterns) == 0 || s == "" {
		return s
	}
	out := s
	for _, re := range f.patterns {
		out = re.ReplaceAllStringFunc(out, func(m string) string {
			return strings.Repeat("*", len([]rune(m)))
		})
	}
	return out
}

func isASCIIWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-') {
			return false
		}
	}
	return true
}
