package usecase

import (
	"fmt"

	"quotematch/internal/adapter/vectorizer"
	"quotematch/internal/adapter/vocab"
	"quotematch/internal/port"
)

// Precomputer builds the per-quote matrices a Matcher later consumes
// read-only: the semantic encoding matrix (one embedding per quote) and the
// hybrid feature matrix (each quote run through the same vectorizer queries
// go through). Runs offline, once per corpus change.
type Precomputer struct {
	src      port.CorpusSource
	embedder port.Embedder
}

// NewPrecomputer creates a Precomputer over src using embedder.
func NewPrecomputer(src port.CorpusSource, embedder port.Embedder) *Precomputer {
	return &Precomputer{src: src, embedder: embedder}
}

// Run embeds every quote in batches of batchSize and writes both matrices to
// w. progress, if non-nil, is called after each batch with the number of
// quotes processed so far.
func (p *Precomputer) Run(w port.MatrixWriter, batchSize int, progress func(done, total int)) error {
	quotes, err := p.src.Quotes()
	if err != nil {
		return fmt.Errorf("failed to load quotes: %w", err)
	}
	if len(quotes) == 0 {
		return fmt.Errorf("corpus is empty")
	}

	vibes, err := p.src.BookVibes()
	if err != nil {
		return fmt.Errorf("failed to load book vibes: %w", err)
	}

	topics := vocab.Build(topicColumn(quotes), vectorizer.TopicDims)
	purposes := vocab.Build(purposeColumn(quotes), vectorizer.PurposeDims)
	vec := vectorizer.New(p.embedder, topics, purposes, averageVibe(vibes))

	if batchSize <= 0 {
		batchSize = 100
	}

	encodings := make([][]float32, 0, len(quotes))
	hybrid := make([][]float32, 0, len(quotes))

	for start := 0; start < len(quotes); start += batchSize {
		end := start + batchSize
		if end > len(quotes) {
			end = len(quotes)
		}
		batch := quotes[start:end]

		normalized := make([]string, len(batch))
		for i, q := range batch {
			normalized[i] = vectorizer.Normalize(q.Text)
		}

		embeddings, err := p.embedder.Embed(normalized)
		if err != nil {
			return fmt.Errorf("failed to embed quotes %d-%d: %w", start, end-1, err)
		}
		if len(embeddings) != len(batch) {
			return fmt.Errorf("embedder returned %d vectors for %d quotes", len(embeddings), len(batch))
		}

		for i := range batch {
			encodings = append(encodings, embeddings[i])
			hybrid = append(hybrid, vec.FromEmbedding(normalized[i], embeddings[i]))
		}

		if progress != nil {
			progress(end, len(quotes))
		}
	}

	if err := w.WriteEncodings(encodings); err != nil {
		return fmt.Errorf("failed to write encoding matrix: %w", err)
	}
	if err := w.WriteHybrid(hybrid); err != nil {
		return fmt.Errorf("failed to write hybrid matrix: %w", err)
	}

	return nil
}

// QuoteCount reports how many quotes the precompute run will cover.
func (p *Precomputer) QuoteCount() (int, error) {
	quotes, err := p.src.Quotes()
	if err != nil {
		return 0, err
	}
	return len(quotes), nil
}
