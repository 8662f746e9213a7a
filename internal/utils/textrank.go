package utils

import (
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// TextRank scores how well query matches text. The score is normalized by
// query length so a threshold carries across queries of different sizes;
// zero means no match. Matching is case-insensitive and fuzzy: the query
// characters must appear in order, with higher scores for tighter and
// word-boundary matches.
func TextRank(text, query string) float64 {
	pattern := []rune(strings.ToLower(strings.TrimSpace(query)))
	if len(pattern) == 0 {
		return 0
	}

	chars := util.ToChars([]byte(strings.ToLower(text)))
	result, _ := algo.FuzzyMatchV2(false, true, true, &chars, pattern, false, nil)
	if result.Score <= 0 {
		return 0
	}
	return float64(result.Score) / float64(len(pattern))
}
