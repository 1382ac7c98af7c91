package vectorizer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"quotematch/internal/port"
)

// Slice widths of the hybrid feature space. The four slices are disjoint and
// concatenated in this order; corpus matrices and query vectors share the
// same layout.
const (
	SemanticDims = 384
	TopicDims    = 80
	PurposeDims  = 30
	ContextDims  = 12
	TotalDims    = SemanticDims + TopicDims + PurposeDims + ContextDims
)

// Vectorizer turns arbitrary user text into a TotalDims-wide query vector
// directly comparable to the precomputed hybrid feature matrix.
type Vectorizer struct {
	embedder port.Embedder
	topics   []string
	purposes []string
	bookVibe []float64
}

// New creates a Vectorizer. topics and purposes are the fixed-order
// vocabularies; bookVibe is the corpus-wide average book descriptor, baked
// identically into every query's context slice.
func New(embedder port.Embedder, topics, purposes []string, bookVibe []float64) *Vectorizer {
	return &Vectorizer{
		embedder: embedder,
		topics:   topics,
		purposes: purposes,
		bookVibe: bookVibe,
	}
}

// Vector builds the query vector for text. Empty and whitespace-only input
// is valid and yields a low-information but well-formed vector.
func (v *Vectorizer) Vector(text string) ([]float32, error) {
	text = Normalize(text)

	embeddings, err := v.embedder.Embed([]string{text})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("embedding returned empty result")
	}

	return v.FromEmbedding(text, embeddings[0]), nil
}

// FromEmbedding assembles the hybrid vector for already-normalized text and
// its semantic embedding. The offline precompute path uses this to reuse
// batched embeddings instead of embedding one text at a time.
func (v *Vectorizer) FromEmbedding(text string, semantic []float32) []float32 {
	words := wordSet(text)
	topicsVec := presenceVector(v.topics, words)
	purposesVec := presenceVector(v.purposes, words)
	contextVec := v.contextVector(text)

	combined := make([]float32, 0, TotalDims)
	combined = append(combined, semantic...)
	combined = append(combined, topicsVec...)
	combined = append(combined, purposesVec...)
	combined = append(combined, contextVec...)

	return fitDimension(combined, TotalDims)
}

// contextVector derives the 12 scalar context features from the normalized
// text and the corpus-average book vibe.
func (v *Vectorizer) contextVector(text string) []float32 {
	ctx := make([]float32, ContextDims)

	charCount := utf8.RuneCountInString(text)
	wordCount := len(strings.Fields(text))

	ctx[0] = float32(min(float64(charCount)/500, 1.0))
	ctx[1] = float32(min(float64(wordCount)/100, 1.0))
	if charCount < 80 {
		ctx[2] = 1
	}
	if charCount >= 80 && charCount <= 200 {
		ctx[3] = 1
	}

	// The book vibe is a fixed global prior, not a query-dependent signal.
	if len(v.bookVibe) >= 7 {
		for i := 0; i < 7; i++ {
			ctx[4+i] = float32(v.bookVibe[i])
		}
	}

	ctx[11] = 0.5
	return ctx
}

// presenceVector flags which vocabulary terms occur as whole words in the
// query. Empty padding slots never match.
func presenceVector(vocab []string, words map[string]struct{}) []float32 {
	vec := make([]float32, len(vocab))
	for i, term := range vocab {
		if term == "" {
			continue
		}
		if _, ok := words[term]; ok {
			vec[i] = 1
		}
	}
	return vec
}

// Normalize lowercases and trims text, then removes every rune that is not a
// word character, whitespace, or one of ! ? . , ;
func Normalize(text string) string {
	text = strings.TrimSpace(strings.ToLower(text))

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isWordRune(r) || unicode.IsSpace(r) || isKeptPunct(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// wordSet splits normalized text into whole words and returns them as a set.
func wordSet(text string) map[string]struct{} {
	words := make(map[string]struct{})
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words[current.String()] = struct{}{}
			current.Reset()
		}
	}

	for _, r := range text {
		if isWordRune(r) {
			current.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return words
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func isKeptPunct(r rune) bool {
	switch r {
	case '!', '?', '.', ',', ';':
		return true
	}
	return false
}

// fitDimension forces vec to exactly dim entries. The sub-slice widths are
// fixed, so a mismatch indicates an internal construction bug (most likely
// an embedder with an unexpected dimension); it is corrected rather than
// raised so query vectors always stay comparable to the corpus matrix.
func fitDimension(vec []float32, dim int) []float32 {
	if len(vec) == dim {
		return vec
	}
	if len(vec) > dim {
		return vec[:dim]
	}
	padded := make([]float32, dim)
	copy(padded, vec)
	return padded
}
