package services

import (
	"strings"
	"unicode"

	"simpleq/contexts/moderation-safety/blacklist-service/domain/entities"
)

// MatchBlacklisted returns the names of items that occur as whole words (or
// whole-word phrases) in any of texts. Matching ignores case and punctuation.
func MatchBlacklisted(items []entities.BlacklistItem, texts ...string) []string {
	if len(items) == 0 || len(texts) == 0 {
		return nil
	}

	normalized := make([]string, 0, len(texts))
	for _, text := range texts {
		if value := normalizeWords(text); value != "" {
			normalized = append(normalized, " "+value+" ")
		}
	}
	if len(normalized) == 0 {
		return nil
	}

	var matched []string
	for _, item := range items {
		needle := normalizeWords(item.Name)
		if needle == "" {
			continue
		}
		needle = " " + needle + " "
		for _, haystack := range normalized {
			if strings.Contains(haystack, needle) {
				matched = append(matched, item.Name)
				break
			}
		}
	}
	return matched
}

func normalizeWords(text string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)
	return strings.Join(strings.Fields(mapped), " ")
}
