// Package analyzer computes word, character and sentence statistics for a
// block of text and ranks its most frequent significant words.
package analyzer

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// DefaultTopN is the number of ranked words returned in a Result.
	DefaultTopN = 5
	// MinTokenLength is the shortest token considered for ranking, measured in
	// UTF-16 code units as browsers report string length.
	MinTokenLength = 3
)

var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "a": {}, "an": {}, "in": {}, "on": {}, "at": {},
	"to": {}, "for": {}, "of": {}, "with": {}, "is": {}, "are": {}, "was": {},
	"were": {}, "be": {}, "been": {}, "being": {},
}

// WordCount is one ranked word and how often it occurred.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Result is the analysis of a single text.
type Result struct {
	WordCount      int         `json:"wordCount"`
	CharacterCount int         `json:"characterCount"`
	TopWords       []WordCount `json:"topWords"`
	SentenceCount  int         `json:"sentenceCount"`
}

// Analyze never fails; every string has a defined Result.
func Analyze(text string) Result {
	return Result{
		WordCount:      CountWords(text),
		CharacterCount: CountCharacters(text),
		TopWords:       TopWords(text, DefaultTopN),
		SentenceCount:  CountSentences(text),
	}
}

// CountWords counts whitespace-delimited tokens.
func CountWords(text string) int {
	return len(fields(text))
}

// CountCharacters counts Unicode code points, whitespace and punctuation included.
func CountCharacters(text string) int {
	return utf8.RuneCountInString(text)
}

// CountSentences counts the non-blank segments between runs of '.', '!' and '?'.
func CountSentences(text string) int {
	count := 0
	for _, segment := range strings.FieldsFunc(text, isTerminator) {
		if strings.TrimFunc(segment, isSpace) != "" {
			count++
		}
	}
	return count
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// TopWords ranks normalized, non-stopword tokens by frequency. Words with
// equal counts keep the order in which they first appeared.
func TopWords(text string, n int) []WordCount {
	freq := newFrequencyMap()

	lowered := cases.Lower(language.Und).String(text)
	for _, token := range fields(lowered) {
		if utf16Len(token) < MinTokenLength {
			continue
		}
		word := normalize(token)
		if word == "" {
			continue
		}
		if _, stop := stopwords[word]; stop {
			continue
		}
		freq.add(word)
	}

	ranked := freq.entries
	slices.SortStableFunc(ranked, func(a, b WordCount) int {
		return b.Count - a.Count
	})

	if n < 0 {
		n = 0
	}
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// isSpace matches the ECMAScript whitespace class: Unicode spaces and the
// byte order mark, but not U+0085.
func isSpace(r rune) bool {
	if r == '\uFEFF' {
		return true
	}
	return r != '\u0085' && unicode.IsSpace(r)
}

func fields(text string) []string {
	return strings.FieldsFunc(text, isSpace)
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// normalize keeps only ASCII letters and digits.
func normalize(token string) string {
	var b strings.Builder
	b.Grow(len(token))
	for i := 0; i < len(token); i++ {
		c := token[i]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// frequencyMap counts words while remembering first-occurrence order.
type frequencyMap struct {
	index   map[string]int
	entries []WordCount
}

func newFrequencyMap() *frequencyMap {
	return &frequencyMap{
		index:   make(map[string]int),
		entries: []WordCount{},
	}
}

func (f *frequencyMap) add(word string) {
	if i, ok := f.index[word]; ok {
		f.entries[i].Count++
		return
	}
	f.index[word] = len(f.entries)
	f.entries = append(f.entries, WordCount{Word: word, Count: 1})
}
