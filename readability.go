package psytext

import (
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
)

// FleschReadingEase scores words spread over the given number of sentences.
// Higher is easier; plain English usually falls between 60 and 70.
func FleschReadingEase(words []string, sentences int) (float64, error) {
	if len(words) == 0 {
		return 0, ErrNoWords
	}
	if sentences < 1 {
		sentences = 1
	}

	syllables := 0
	for _, w := range words {
		syllables += CountSyllables(w)
	}

	nw := float64(len(words))
	score := 206.835 - 1.015*(nw/float64(sentences)) - 84.6*(float64(syllables)/nw)
	return scalar.Round(score, 2), nil
}

// CountSyllables estimates the syllables in word by counting vowel groups,
// discounting a trailing silent "e". Every word has at least one syllable.
func CountSyllables(word string) int {
	word = strings.ToLower(word)
	syllables := 0
	previousWasVowel := false

	for _, char := range word {
		isVowel := strings.ContainsRune("aeiouy", char)
		if isVowel && !previousWasVowel {
			syllables++
		}
		previousWasVowel = isVowel
	}

	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && syllables > 1 {
		syllables--
	}
	if syllables == 0 {
		syllables = 1
	}
	return syllables
}
