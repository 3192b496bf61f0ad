package psytext

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenTester reports whether a span should be kept as a single token.
type TokenTester func(string) bool

// Tokenizer splits text into word and punctuation tokens.
type Tokenizer interface {
	Tokenize(string) []Token
}

// iterTokenizer splits text into words following Penn Treebank conventions:
// contractions are separated ("don't" -> "do", "n't") and surrounding
// punctuation becomes its own token.
type iterTokenizer struct {
	specialRE      *regexp.Regexp
	sanitizer      *strings.Replacer
	contractions   []string
	splitCases     []string
	suffixes       []string
	prefixes       []string
	emoticons      map[string]int
	isUnsplittable TokenTester
}

type TokenizerOptFunc func(*iterTokenizer)

// UsingIsUnsplittable gives a function that tests whether a token is splittable or not.
func UsingIsUnsplittable(x TokenTester) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.isUnsplittable = x
	}
}

// UsingSpecialRE uses the provided regex for unsplittable tokens.
func UsingSpecialRE(x *regexp.Regexp) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.specialRE = x
	}
}

// NewIterTokenizer is the constructor for the default tokenizer.
func NewIterTokenizer(opts ...TokenizerOptFunc) *iterTokenizer {
	tok := new(iterTokenizer)

	tok.contractions = contractions
	tok.emoticons = emoticons
	tok.isUnsplittable = func(_ string) bool { return false }
	tok.prefixes = prefixes
	tok.sanitizer = sanitizer
	tok.specialRE = internalRE
	tok.suffixes = suffixes

	for _, applyOpt := range opts {
		applyOpt(tok)
	}

	tok.splitCases = append(tok.splitCases, tok.contractions...)

	return tok
}

func (t *iterTokenizer) addToken(s string, start int, toks []Token) []Token {
	if strings.TrimSpace(s) != "" {
		toks = append(toks, Token{Text: s, Start: start, End: start + len(s)})
	}
	return toks
}

func (t *iterTokenizer) isSpecial(token string) bool {
	_, found := t.emoticons[token]
	return found || t.specialRE.MatchString(token) || t.isUnsplittable(token)
}

func (t *iterTokenizer) doSplit(token string, offset int) []Token {
	tokens := []Token{}
	suffs := []Token{}

	last := 0
	for token != "" && utf8.RuneCountInString(token) != last {
		if t.isSpecial(token) {
			// Emoticons, abbreviations and the like are kept whole.
			tokens = t.addToken(token, offset, tokens)
			break
		}
		last = utf8.RuneCountInString(token)
		lower := strings.ToLower(token)
		if hasAnyPrefix(token, t.prefixes) {
			// $100 -> [$, 100]
			tokens = t.addToken(token[:1], offset, tokens)
			token = token[1:]
			offset++
		} else if idx := hasAnyIndex(lower, t.splitCases); idx > 0 {
			// they'll -> [they, 'll]; don't -> [do, n't]
			tokens = t.addToken(token[:idx], offset, tokens)
			offset += idx
			token = token[idx:]
		} else if hasAnySuffix(token, t.suffixes) {
			// Well) -> [Well, )]
			end := len(token) - 1
			suffs = append([]Token{{Text: token[end:], Start: offset + end, End: offset + end + 1}}, suffs...)
			token = token[:end]
		} else {
			tokens = t.addToken(token, offset, tokens)
			break
		}
	}

	return append(tokens, suffs...)
}

// Tokenize splits text into tokens with byte offsets into the sanitized text.
func (t *iterTokenizer) Tokenize(text string) []Token {
	var tokens []Token

	clean := t.sanitizer.Replace(text)
	start := -1
	for i, r := range clean {
		if unicode.IsSpace(r) {
			if start >= 0 {
				tokens = append(tokens, t.doSplit(clean[start:i], start)...)
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, t.doSplit(clean[start:], start)...)
	}

	return tokens
}

// Words returns the lowercased alphanumeric tokens of text, discarding
// punctuation and contraction fragments such as "n't".
func Words(tok Tokenizer, text string) []string {
	var words []string
	for _, token := range tok.Tokenize(strings.ToLower(text)) {
		if isAlnum(token.Text) {
			words = append(words, token.Text)
		}
	}
	return words
}

func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func hasAnyPrefix(s string, prefixes []string) bool {
	n := len(s)
	for _, prefix := range prefixes {
		if n > len(prefix) && strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func hasAnySuffix(s string, suffixes []string) bool {
	n := len(s)
	for _, suffix := range suffixes {
		if n > len(suffix) && strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

func hasAnyIndex(s string, cases []string) int {
	n := len(s)
	for _, c := range cases {
		if idx := strings.Index(s, c); idx >= 0 && n > len(c) {
			return idx
		}
	}
	return -1
}

var internalRE = regexp.MustCompile(`^(?:[A-Za-z]\.){2,}$|^[A-Z][a-z]{1,2}\.$`)
var sanitizer = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
	"&rsquo;", "'")
var contractions = []string{"'ll", "'s", "'re", "'m", "'ve", "'d", "n't"}
var suffixes = []string{",", ")", `"`, "]", "!", ";", ".", "?", ":", "'"}
var prefixes = []string{"$", "(", `"`, "["}
var emoticons = map[string]int{
	":(":  1,
	":)":  1,
	":-(": 1,
	":-)": 1,
	":-/": 1,
	":D":  1,
	":P":  1,
	";)":  1,
	"<3":  1,
	"=(":  1,
	"=)":  1,
	"xD":  1,
}
