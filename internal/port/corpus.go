package port

import "quotematch/internal/domain"

// CorpusSource provides the read-only quote metadata and book descriptor
// tables an already-built matcher consumes at construction time.
type CorpusSource interface {
	// Quotes returns all quote records in corpus row order.
	Quotes() ([]domain.Quote, error)

	// BookVibes returns the per-book numeric descriptor rows. The matcher
	// averages them into a single corpus-wide vibe vector.
	BookVibes() ([][]float64, error)
}

// MatrixStore holds the precomputed per-quote matrices, row-aligned with the
// quote metadata table. Implementations load everything at open time; reads
// never touch storage afterwards.
type MatrixStore interface {
	// Hybrid returns the 506-dim hybrid feature matrix.
	Hybrid() ([][]float32, error)

	// Encodings returns the semantic encoding matrix.
	Encodings() ([][]float32, error)

	Close() error
}

// MatrixWriter is the write side of the matrix store, used only by the
// offline precompute path. Running matchers never see it.
type MatrixWriter interface {
	WriteHybrid(rows [][]float32) error
	WriteEncodings(rows [][]float32) error
}
