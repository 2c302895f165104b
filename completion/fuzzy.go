package completion

import (
	"sort"
	"strings"
	"unicode"

	"github.com/dshills/lineedit/document"
)

// FuzzyWordCompleter completes the word before the cursor against a fixed
// word list with fuzzy subsequence matching. Candidates are ordered by
// score, best first.
type FuzzyWordCompleter struct {
	words []string
}

// NewFuzzyWordCompleter creates a fuzzy completer over the given words.
func NewFuzzyWordCompleter(words []string) *FuzzyWordCompleter {
	return &FuzzyWordCompleter{words: append([]string(nil), words...)}
}

// Complete implements Completer.
func (f *FuzzyWordCompleter) Complete(doc *document.Document, _ Trigger) ([]Completion, error) {
	word := doc.WordBeforeCursor()
	query := strings.ToLower(word)

	type scored struct {
		word  string
		score int
	}
	var matches []scored
	for _, candidate := range f.words {
		score := fuzzyScore(query, strings.ToLower(candidate))
		if score > 0 {
			matches = append(matches, scored{word: candidate, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	out := make([]Completion, 0, len(matches))
	for _, m := range matches {
		out = append(out, Completion{
			Text:          m.word,
			StartPosition: -len([]rune(word)),
		})
	}
	return out, nil
}

// fuzzyScore rates how well query matches text as a subsequence. Exact and
// prefix matches dominate; consecutive and word-boundary hits earn bonuses.
// Returns 0 when query is not a subsequence of text.
func fuzzyScore(query, text string) int {
	if len(query) == 0 {
		return 100
	}
	if len(text) == 0 {
		return 0
	}
	if query == text {
		return 1000
	}
	if strings.HasPrefix(text, query) {
		return 800 + (100 - len(text))
	}

	queryRunes := []rune(query)
	textRunes := []rune(text)

	score := 0
	queryIdx := 0
	lastMatchIdx := -1
	consecutive := 0

	for textIdx, char := range textRunes {
		if queryIdx >= len(queryRunes) {
			break
		}
		if unicode.ToLower(char) != unicode.ToLower(queryRunes[queryIdx]) {
			continue
		}

		score += 10
		if textIdx == lastMatchIdx+1 {
			consecutive++
			score += consecutive * 5
		} else {
			consecutive = 0
		}
		if textIdx == 0 || !unicode.IsLetter(textRunes[textIdx-1]) {
			score += 15
		}

		lastMatchIdx = textIdx
		queryIdx++
	}

	if queryIdx < len(queryRunes) {
		return 0
	}
	if penalty := len(textRunes) - len(queryRunes); penalty > 0 {
		score -= penalty
	}
	return max(score, 1)
}
