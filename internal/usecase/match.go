package usecase

import (
	"errors"
	"fmt"

	"quotematch/internal/adapter/ranker"
	"quotematch/internal/adapter/vectorizer"
	"quotematch/internal/adapter/vocab"
	"quotematch/internal/domain"
	"quotematch/internal/port"
)

// ErrIndexOutOfRange is returned by MatchSimilarTo for an index outside the
// corpus. Indexes are never clamped.
var ErrIndexOutOfRange = errors.New("quote index out of range")

// Matcher answers mood queries against the loaded corpus. Everything it
// holds is built once here and read-only afterwards, so a single Matcher is
// safe to share across concurrent callers.
type Matcher struct {
	quotes      []domain.Quote
	hybrid      [][]float32
	encodings   [][]float32
	vectorizer  *vectorizer.Vectorizer
	topics      []string
	purposes    []string
	avgBookVibe []float64
	books       int
}

// NewMatcher loads the corpus from src and the precomputed matrices from
// matrices, builds both vocabularies and the average book vibe, and wires a
// query vectorizer around embedder. Any missing or misaligned input fails
// construction; a partial matcher is never returned.
func NewMatcher(src port.CorpusSource, matrices port.MatrixStore, embedder port.Embedder) (*Matcher, error) {
	quotes, err := src.Quotes()
	if err != nil {
		return nil, fmt.Errorf("failed to load quotes: %w", err)
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("corpus is empty")
	}

	vibes, err := src.BookVibes()
	if err != nil {
		return nil, fmt.Errorf("failed to load book vibes: %w", err)
	}

	hybrid, err := matrices.Hybrid()
	if err != nil {
		return nil, fmt.Errorf("failed to load hybrid matrix: %w", err)
	}
	encodings, err := matrices.Encodings()
	if err != nil {
		return nil, fmt.Errorf("failed to load encoding matrix: %w", err)
	}

	// Row i of every structure must refer to the same quote. Counts are the
	// only thing that can be checked here, so a mismatch is fatal.
	if len(hybrid) != len(quotes) {
		return nil, fmt.Errorf("hybrid matrix has %d rows for %d quotes", len(hybrid), len(quotes))
	}
	if len(encodings) != len(quotes) {
		return nil, fmt.Errorf("encoding matrix has %d rows for %d quotes", len(encodings), len(quotes))
	}

	topics := vocab.Build(topicColumn(quotes), vectorizer.TopicDims)
	purposes := vocab.Build(purposeColumn(quotes), vectorizer.PurposeDims)
	avgVibe := averageVibe(vibes)

	return &Matcher{
		quotes:      quotes,
		hybrid:      hybrid,
		encodings:   encodings,
		vectorizer:  vectorizer.New(embedder, topics, purposes, avgVibe),
		topics:      topics,
		purposes:    purposes,
		avgBookVibe: avgVibe,
		books:       countBooks(quotes),
	}, nil
}

// Match vectorizes text and returns the topK closest quotes from the hybrid
// feature space. Empty or malformed text is never an error. Each call is
// independent; pagination is done by the caller asking for a larger topK and
// slicing off what it has already shown.
func (m *Matcher) Match(text string, topK int) ([]domain.Match, error) {
	vec, err := m.vectorizer.Vector(text)
	if err != nil {
		return nil, err
	}

	return m.toMatches(ranker.Rank(vec, m.hybrid, topK, -1)), nil
}

// MatchSimilarTo returns the topK quotes closest to quote index in the
// semantic encoding space, never including index itself.
func (m *Matcher) MatchSimilarTo(index, topK int) ([]domain.Match, error) {
	if index < 0 || index >= len(m.quotes) {
		return nil, fmt.Errorf("%w: %d (corpus has %d quotes)", ErrIndexOutOfRange, index, len(m.quotes))
	}

	return m.toMatches(ranker.Rank(m.encodings[index], m.encodings, topK, index)), nil
}

// Quote returns the corpus record at index.
func (m *Matcher) Quote(index int) (domain.Quote, error) {
	if index < 0 || index >= len(m.quotes) {
		return domain.Quote{}, fmt.Errorf("%w: %d (corpus has %d quotes)", ErrIndexOutOfRange, index, len(m.quotes))
	}
	return m.quotes[index], nil
}

// Stats describes the loaded corpus.
func (m *Matcher) Stats() domain.CorpusStats {
	stats := domain.CorpusStats{
		Quotes: len(m.quotes),
		Books:  m.books,
	}
	if len(m.hybrid) > 0 {
		stats.HybridDim = len(m.hybrid[0])
	}
	if len(m.encodings) > 0 {
		stats.EncodingDim = len(m.encodings[0])
	}
	for _, t := range m.topics {
		if t != "" {
			stats.TopicTerms++
		}
	}
	for _, p := range m.purposes {
		if p != "" {
			stats.PurposeTerms++
		}
	}
	return stats
}

func (m *Matcher) toMatches(results []ranker.Result) []domain.Match {
	matches := make([]domain.Match, len(results))
	for i, r := range results {
		q := m.quotes[r.Index]
		matches[i] = domain.Match{
			Index:         r.Index,
			Compatibility: r.Compatibility,
			Similarity:    r.Similarity,
			Quote:         q.Text,
			Book:          q.Book,
			Topic:         q.Topic,
			Purpose:       q.Purpose,
		}
	}
	return matches
}

func topicColumn(quotes []domain.Quote) []string {
	col := make([]string, len(quotes))
	for i, q := range quotes {
		col[i] = q.Topic
	}
	return col
}

func purposeColumn(quotes []domain.Quote) []string {
	col := make([]string, len(quotes))
	for i, q := range quotes {
		col[i] = q.Purpose
	}
	return col
}

// averageVibe averages the per-book descriptor rows column-wise into the
// single corpus-wide vibe vector the vectorizer bakes into every query.
func averageVibe(vibes [][]float64) []float64 {
	if len(vibes) == 0 {
		return nil
	}

	avg := make([]float64, len(vibes[0]))
	for _, row := range vibes {
		for i := 0; i < len(avg) && i < len(row); i++ {
			avg[i] += row[i]
		}
	}
	for i := range avg {
		avg[i] /= float64(len(vibes))
	}
	return avg
}

func countBooks(quotes []domain.Quote) int {
	seen := make(map[string]struct{})
	for _, q := range quotes {
		seen[q.Book] = struct{}{}
	}
	return len(seen)
}
