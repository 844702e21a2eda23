// Package wordlist provides the dictionary used for the first phase of the
// search: a built-in list of common passwords, optionally merged with a custom
// word file, plus the deterministic per-word variation expansion.
package wordlist

import (
	"bufio"
	"os"
	"sort"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

// VariationCount is the number of variations Variations produces per word.
const VariationCount = 7

// Default is the built-in dictionary, always included in the search.
var Default = []string{
	"password", "admin", "123456", "12345678", "qwerty",
	"123456789", "1234", "12345", "dragon", "baseball",
	"abc123", "football", "monkey", "letmein", "shadow",
	"master", "welcome", "login", "princess", "starwars",
}

// Load returns the merged dictionary: Default plus the non-blank lines of the
// file at path, if path is non-empty and readable. A missing or unreadable
// custom file is logged and ignored. The result is deduplicated and sorted so
// iteration order is stable across runs.
func Load(path string, log *zap.SugaredLogger) []string {
	words := append([]string(nil), Default...)

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			log.Warnf("custom dictionary unreadable, continuing with built-in list: %v", err)
		} else {
			scanner := bufio.NewScanner(f)
			for scanner.Scan() {
				word := strings.TrimSpace(scanner.Text())
				if word != "" {
					words = append(words, word)
				}
			}
			if err := scanner.Err(); err != nil {
				log.Warnf("reading custom dictionary: %v", err)
			}
			f.Close()
		}
	}

	seen := make(map[string]struct{}, len(words))
	deduped := words[:0]
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		deduped = append(deduped, w)
	}
	sort.Strings(deduped)
	return deduped
}

// Variations expands a base word into its 7 fixed variations, in order:
// original, capitalized, all-uppercase, then the suffixes 123, !, 123! and
// 2024. Case transforms are no-ops on words without letters, so a purely
// numeric word repeats itself among its own variations; the count stays 7
// either way, which keeps the total estimate honest.
func Variations(base string) []string {
	return []string{
		base,
		capitalize(base),
		strings.ToUpper(base),
		base + "123",
		base + "!",
		base + "123!",
		base + "2024",
	}
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return string(unicode.ToUpper(r[0])) + strings.ToLower(string(r[1:]))
}
