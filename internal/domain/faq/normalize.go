package faq

import (
	"strings"
	"unicode"

	"github.com/blevesearch/segment"
	"github.com/blevesearch/snowballstem"
	"github.com/blevesearch/snowballstem/english"
)

// maxBaseFormPasses bounds the fixed-point reduction of a single token.
const maxBaseFormPasses = 8

// Normalizer turns free text into the canonical form compared by the matcher.
type Normalizer struct {
	stopWords map[string]struct{}
	irregular map[string]string
}

// NewNormalizer builds a normalizer with the English stop-word list.
func NewNormalizer() *Normalizer {
	stop := make(map[string]struct{}, len(englishStopWords))
	for _, w := range englishStopWords {
		stop[w] = struct{}{}
	}
	return &Normalizer{stopWords: stop, irregular: irregularForms}
}

// Normalize lowercases, strips punctuation, drops stop-words and reduces the
// remaining tokens to their base form. The result is a fixed point:
// Normalize(Normalize(x)) == Normalize(x).
func (n *Normalizer) Normalize(text string) string {
	return strings.Join(n.Tokens(text), " ")
}

// Tokens returns the normalized tokens of text in order.
func (n *Normalizer) Tokens(text string) []string {
	cleaned := stripPunctuation(strings.ToLower(text))
	if strings.TrimSpace(cleaned) == "" {
		return nil
	}

	var tokens []string
	segmenter := segment.NewWordSegmenterDirect([]byte(cleaned))
	for segmenter.Segment() {
		if segmenter.Type() == segment.None {
			continue
		}
		word := string(segmenter.Bytes())
		if n.isStopWord(word) {
			continue
		}
		base := n.BaseForm(word)
		if base == "" || n.isStopWord(base) {
			continue
		}
		tokens = append(tokens, base)
	}
	return tokens
}

// BaseForm reduces a lowercase token to its dictionary form.
func (n *Normalizer) BaseForm(word string) string {
	current := word
	for i := 0; i < maxBaseFormPasses; i++ {
		next := current
		if lemma, ok := n.irregular[next]; ok {
			next = lemma
		}
		next = stem(next)
		if next == current {
			break
		}
		current = next
	}
	return current
}

func (n *Normalizer) isStopWord(word string) bool {
	_, ok := n.stopWords[word]
	return ok
}

func stem(word string) string {
	if !isStemmable(word) {
		return word
	}
	env := snowballstem.NewEnv(word)
	english.Stem(env)
	return env.Current()
}

// isStemmable skips numbers and non-latin scripts the English stemmer cannot handle.
func isStemmable(word string) bool {
	for _, r := range word {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return false
		}
	}
	return word != ""
}

func stripPunctuation(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return r
	}, text)
}
