package psytext

import (
	"math"
	"strings"
	"unicode"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// Empirically derived rule weights of the VADER heuristic.
const (
	boosterIncr = 0.293
	boosterDecr = -0.293

	// rating increase for an ALL CAPS word in a mixed-case sentence
	capsIncr = 0.733
	// multiplier applied to a negated lexicon word
	negationScalar = -0.74

	// approximate maximum expected sum, used by normalize
	normalizeAlpha = 15.0

	exclamationIncr = 0.292
	maxExclamations = 4
	questionIncr    = 0.18
	questionCap     = 0.96
)

var negations = toSet([]string{
	"aint", "arent", "cannot", "cant", "couldnt", "darent", "didnt", "doesnt",
	"ain't", "aren't", "can't", "couldn't", "daren't", "didn't", "doesn't",
	"dont", "hadnt", "hasnt", "havent", "isnt", "mightnt", "mustnt", "neither",
	"don't", "hadn't", "hasn't", "haven't", "isn't", "mightn't", "mustn't",
	"neednt", "needn't", "never", "none", "nope", "nor", "not", "nothing", "nowhere",
	"oughtnt", "shant", "shouldnt", "uhuh", "wasnt", "werent",
	"oughtn't", "shan't", "shouldn't", "uh-uh", "wasn't", "weren't",
	"without", "wont", "wouldnt", "won't", "wouldn't", "rarely", "seldom", "despite",
})

// boosters are degree adverbs that scale the following lexicon word.
var boosters = map[string]float64{
	"absolutely": boosterIncr, "amazingly": boosterIncr, "awfully": boosterIncr,
	"completely": boosterIncr, "considerably": boosterIncr, "decidedly": boosterIncr,
	"deeply": boosterIncr, "effing": boosterIncr, "enormously": boosterIncr,
	"entirely": boosterIncr, "especially": boosterIncr, "exceptionally": boosterIncr,
	"extremely": boosterIncr, "fabulously": boosterIncr, "flipping": boosterIncr,
	"flippin": boosterIncr, "fricking": boosterIncr, "frickin": boosterIncr,
	"frigging": boosterIncr, "friggin": boosterIncr, "fully": boosterIncr,
	"greatly": boosterIncr, "hella": boosterIncr, "highly": boosterIncr,
	"hugely": boosterIncr, "incredibly": boosterIncr, "intensely": boosterIncr,
	"majorly": boosterIncr, "more": boosterIncr, "most": boosterIncr,
	"particularly": boosterIncr, "purely": boosterIncr, "quite": boosterIncr,
	"really": boosterIncr, "remarkably": boosterIncr, "so": boosterIncr,
	"substantially": boosterIncr, "thoroughly": boosterIncr, "totally": boosterIncr,
	"tremendously": boosterIncr, "uber": boosterIncr, "unbelievably": boosterIncr,
	"unusually": boosterIncr, "utterly": boosterIncr, "very": boosterIncr,

	"almost": boosterDecr, "barely": boosterDecr, "hardly": boosterDecr,
	"just enough": boosterDecr, "kind of": boosterDecr, "kinda": boosterDecr,
	"kindof": boosterDecr, "kind-of": boosterDecr, "less": boosterDecr,
	"little": boosterDecr, "marginally": boosterDecr, "occasionally": boosterDecr,
	"partly": boosterDecr, "scarcely": boosterDecr, "slightly": boosterDecr,
	"somewhat": boosterDecr, "sort of": boosterDecr, "sorta": boosterDecr,
	"sortof": boosterDecr, "sort-of": boosterDecr,
}

// specialIdioms override the valence of the lexicon word they contain.
var specialIdioms = map[string]float64{
	"the shit":        3,
	"the bomb":        3,
	"bad ass":         1.5,
	"yeah right":      -2,
	"cut the mustard": 2,
	"kiss of death":   -1.5,
	"hand to mouth":   -2,
}

// SentimentAnalyzer computes VADER-style polarity scores against a lexicon.
type SentimentAnalyzer struct {
	lexicon *Lexicon
}

// NewSentimentAnalyzer creates an analyzer bound to lex. A nil lexicon uses
// DefaultLexicon.
func NewSentimentAnalyzer(lex *Lexicon) *SentimentAnalyzer {
	if lex == nil {
		lex = DefaultLexicon()
	}
	return &SentimentAnalyzer{lexicon: lex}
}

// Lexicon returns the lexicon the analyzer scores against.
func (sa *SentimentAnalyzer) Lexicon() *Lexicon {
	return sa.lexicon
}

// sentiText is a sentence prepared for scoring.
type sentiText struct {
	text      string
	words     []string // tokens with surrounding punctuation stripped
	lower     []string
	isCapDiff bool
}

func newSentiText(text string) sentiText {
	fields := strings.Fields(text)
	words := make([]string, len(fields))
	lower := make([]string, len(fields))
	for i, f := range fields {
		words[i] = stripPunctIfWord(f)
		lower[i] = strings.ToLower(words[i])
	}
	return sentiText{
		text:      text,
		words:     words,
		lower:     lower,
		isCapDiff: allCapDifferential(words),
	}
}

// stripPunctIfWord removes leading and trailing punctuation unless what is
// left is two characters or fewer, which keeps emoticons like ":)" intact.
func stripPunctIfWord(token string) string {
	stripped := strings.TrimFunc(token, isASCIIPunct)
	if len(stripped) <= 2 {
		return token
	}
	return stripped
}

func isASCIIPunct(r rune) bool {
	return r < unicode.MaxASCII && unicode.IsPunct(r) || strings.ContainsRune("$+<=>^`|~", r)
}

// PolarityScores scores one sentence.
func (sa *SentimentAnalyzer) PolarityScores(text string) PolarityScores {
	st := newSentiText(text)

	sentiments := make([]float64, 0, len(st.words))
	for i := range st.words {
		lw := st.lower[i]
		if _, ok := boosters[lw]; ok {
			sentiments = append(sentiments, 0)
			continue
		}
		if lw == "kind" && i < len(st.words)-1 && st.lower[i+1] == "of" {
			sentiments = append(sentiments, 0)
			continue
		}
		sentiments = append(sentiments, sa.sentimentValence(&st, i))
	}

	sentiments = butCheck(st.lower, sentiments)
	return scoreValence(sentiments, text)
}

func (sa *SentimentAnalyzer) sentimentValence(st *sentiText, i int) float64 {
	valence, ok := sa.lexicon.Score(st.lower[i])
	if !ok {
		return 0
	}

	// ALL CAPS emphasis only counts when the rest of the sentence is not shouting
	if isUpper(st.words[i]) && st.isCapDiff {
		if valence > 0 {
			valence += capsIncr
		} else {
			valence -= capsIncr
		}
	}

	for startI := 0; startI < 3; startI++ {
		if i <= startI {
			continue
		}
		prev := i - (startI + 1)
		if sa.lexicon.Has(st.lower[prev]) {
			continue
		}
		s := scalarIncDec(st.words[prev], valence, st.isCapDiff)
		if startI == 1 && s != 0 {
			s *= 0.95
		}
		if startI == 2 && s != 0 {
			s *= 0.9
		}
		valence += s
		valence = neverCheck(valence, st.lower, startI, i)
		if startI == 2 {
			valence = idiomsCheck(valence, st.lower, i)
		}
	}

	return sa.leastCheck(valence, st.lower, i)
}

// scalarIncDec returns the boost contributed by a preceding degree adverb.
func scalarIncDec(word string, valence float64, isCapDiff bool) float64 {
	boost, ok := boosters[strings.ToLower(word)]
	if !ok {
		return 0
	}
	if valence < 0 {
		boost *= -1
	}
	if isUpper(word) && isCapDiff {
		if valence > 0 {
			boost += capsIncr
		} else {
			boost -= capsIncr
		}
	}
	return boost
}

func neverCheck(valence float64, lower []string, startI, i int) float64 {
	switch startI {
	case 0:
		if negated(lower[i-1]) {
			valence *= negationScalar
		}
	case 1:
		if lower[i-2] == "never" && (lower[i-1] == "so" || lower[i-1] == "this") {
			valence *= 1.25
		} else if lower[i-2] == "without" && lower[i-1] == "doubt" {
			// "without doubt" affirms
		} else if negated(lower[i-2]) {
			valence *= negationScalar
		}
	case 2:
		if lower[i-3] == "never" && (lower[i-2] == "so" || lower[i-2] == "this") ||
			(lower[i-1] == "so" || lower[i-1] == "this") {
			valence *= 1.25
		} else if lower[i-3] == "without" && (lower[i-2] == "doubt" || lower[i-1] == "doubt") {
			// "without a doubt" affirms
		} else if negated(lower[i-3]) {
			valence *= negationScalar
		}
	}
	return valence
}

func idiomsCheck(valence float64, lower []string, i int) float64 {
	oneZero := lower[i-1] + " " + lower[i]
	twoOneZero := lower[i-2] + " " + lower[i-1] + " " + lower[i]
	twoOne := lower[i-2] + " " + lower[i-1]
	threeTwoOne := lower[i-3] + " " + lower[i-2] + " " + lower[i-1]
	threeTwo := lower[i-3] + " " + lower[i-2]

	for _, seq := range []string{oneZero, twoOneZero, twoOne, threeTwoOne, threeTwo} {
		if v, ok := specialIdioms[seq]; ok {
			valence = v
			break
		}
	}

	if len(lower)-1 > i {
		if v, ok := specialIdioms[lower[i]+" "+lower[i+1]]; ok {
			valence = v
		}
	}
	if len(lower)-1 > i+1 {
		if v, ok := specialIdioms[lower[i]+" "+lower[i+1]+" "+lower[i+2]]; ok {
			valence = v
		}
	}

	// dampener bigrams such as "kind of" or "sort of"
	if _, ok := boosters[threeTwo]; ok {
		valence += boosterDecr
	} else if _, ok := boosters[twoOne]; ok {
		valence += boosterDecr
	}
	return valence
}

// leastCheck negates "least <word>" unless it reads "at least" or "very least".
func (sa *SentimentAnalyzer) leastCheck(valence float64, lower []string, i int) float64 {
	if i > 0 && lower[i-1] == "least" && !sa.lexicon.Has(lower[i-1]) {
		if i == 1 || (lower[i-2] != "at" && lower[i-2] != "very") {
			valence *= negationScalar
		}
	}
	return valence
}

// butCheck shifts weight to the clause after the first "but".
func butCheck(lower []string, sentiments []float64) []float64 {
	bi := -1
	for i, w := range lower {
		if w == "but" {
			bi = i
			break
		}
	}
	if bi < 0 {
		return sentiments
	}
	for si := range sentiments {
		if si < bi {
			sentiments[si] *= 0.5
		} else if si > bi {
			sentiments[si] *= 1.5
		}
	}
	return sentiments
}

func negated(word string) bool {
	if _, ok := negations[word]; ok {
		return true
	}
	return strings.Contains(word, "n't")
}

// punctuationEmphasis is the amplifier contributed by '!' and '?' runs.
func punctuationEmphasis(text string) float64 {
	ep := strings.Count(text, "!")
	if ep > maxExclamations {
		ep = maxExclamations
	}
	amp := float64(ep) * exclamationIncr

	qm := strings.Count(text, "?")
	if qm > 1 {
		if qm <= 3 {
			amp += float64(qm) * questionIncr
		} else {
			amp += questionCap
		}
	}
	return amp
}

func scoreValence(sentiments []float64, text string) PolarityScores {
	if len(sentiments) == 0 {
		return PolarityScores{}
	}

	sum := floats.Sum(sentiments)
	amp := punctuationEmphasis(text)
	if sum > 0 {
		sum += amp
	} else if sum < 0 {
		sum -= amp
	}
	compound := normalize(sum)

	var posSum, negSum, neuCount float64
	for _, s := range sentiments {
		switch {
		case s > 0:
			// +1 compensates for neutral words being counted as 1
			posSum += s + 1
		case s < 0:
			negSum += s - 1
		default:
			neuCount++
		}
	}

	if posSum > math.Abs(negSum) {
		posSum += amp
	} else if posSum < math.Abs(negSum) {
		negSum -= amp
	}

	total := posSum + math.Abs(negSum) + neuCount
	return PolarityScores{
		Neg:      scalar.Round(math.Abs(negSum/total), 3),
		Neu:      scalar.Round(math.Abs(neuCount/total), 3),
		Pos:      scalar.Round(math.Abs(posSum/total), 3),
		Compound: scalar.Round(compound, 4),
	}
}

// normalize maps an unbounded sum into [-1, 1].
func normalize(score float64) float64 {
	n := score / math.Sqrt(score*score+normalizeAlpha)
	return math.Max(-1, math.Min(1, n))
}

// allCapDifferential reports whether some, but not all, words are ALL CAPS.
func allCapDifferential(words []string) bool {
	caps := 0
	for _, w := range words {
		if isUpper(w) {
			caps++
		}
	}
	diff := len(words) - caps
	return diff > 0 && diff < len(words)
}

// isUpper reports whether s has at least one cased letter and no lowercase ones.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
