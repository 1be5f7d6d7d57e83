package wallet

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/tyler-smith/go-bip39"
)

// maxSuggestDistance bounds how far a typo may be from a word-list entry.
const maxSuggestDistance = 2

// WordHint flags a recovery phrase word missing from the BIP-39 word list.
type WordHint struct {
	Index      int
	Word       string
	Suggestion string // empty when nothing is close enough
}

var wordIndex map[string]struct{}

func init() {
	words := bip39.GetWordList()
	wordIndex = make(map[string]struct{}, len(words))
	for _, w := range words {
		wordIndex[w] = struct{}{}
	}
}

// IsKnownWord reports whether word is in the BIP-39 English word list.
func IsKnownWord(word string) bool {
	_, ok := wordIndex[word]
	return ok
}

// SuggestWord returns the closest word-list entry to word.
func SuggestWord(word string) (string, bool) {
	if IsKnownWord(word) {
		return word, true
	}
	best, bestDist := "", maxSuggestDistance+1
	for _, candidate := range bip39.GetWordList() {
		if d := levenshtein.ComputeDistance(word, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best, best != ""
}

// UnknownWords lists the words of phrase that are not BIP-39 words.
func UnknownWords(phrase string) []WordHint {
	var hints []WordHint
	for i, w := range strings.Fields(phrase) {
		if IsKnownWord(w) {
			continue
		}
		suggestion, _ := SuggestWord(w)
		hints = append(hints, WordHint{Index: i, Word: w, Suggestion: suggestion})
	}
	return hints
}
