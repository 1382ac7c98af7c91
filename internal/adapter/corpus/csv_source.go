package corpus

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"quotematch/internal/domain"
)

// Expected quotes.csv column headers. Topic and purpose are optional.
const (
	colQuote   = "Quote"
	colBook    = "Book"
	colTopic   = "Topic_1_clean"
	colPurpose = "Purpose_clean"
)

// CSVSource loads the quote metadata and book descriptor tables from CSV
// files in a data directory. Quote files are discovered with a glob so the
// corpus may be sharded across several files; shards are concatenated in
// lexical filename order, which fixes the corpus row order.
type CSVSource struct {
	dir       string
	quoteGlob string
	vibesFile string
}

// NewCSVSource creates a source rooted at dir. quoteGlob is a doublestar
// pattern relative to dir (for example "quotes*.csv"); vibesFile is the
// per-book descriptor table filename.
func NewCSVSource(dir, quoteGlob, vibesFile string) *CSVSource {
	return &CSVSource{
		dir:       dir,
		quoteGlob: quoteGlob,
		vibesFile: vibesFile,
	}
}

// Quotes reads every quote file matching the glob and returns the records in
// corpus row order, indexes assigned sequentially across shards.
func (s *CSVSource) Quotes() ([]domain.Quote, error) {
	pattern := filepath.Join(s.dir, s.quoteGlob)
	paths, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid quote glob %q: %w", s.quoteGlob, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no quote files match %s", pattern)
	}
	sort.Strings(paths)

	var quotes []domain.Quote
	for _, path := range paths {
		if err := s.readQuoteFile(path, &quotes); err != nil {
			return nil, err
		}
	}

	return quotes, nil
}

func (s *CSVSource) readQuoteFile(path string, quotes *[]domain.Quote) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open quote file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return fmt.Errorf("quote file %s is empty", path)
	}

	header := records[0]
	quoteCol := columnIndex(header, colQuote)
	bookCol := columnIndex(header, colBook)
	if quoteCol < 0 || bookCol < 0 {
		return fmt.Errorf("quote file %s missing %s/%s columns", path, colQuote, colBook)
	}
	topicCol := columnIndex(header, colTopic)
	purposeCol := columnIndex(header, colPurpose)

	for _, row := range records[1:] {
		q := domain.Quote{
			Index: len(*quotes),
			Text:  field(row, quoteCol),
			Book:  field(row, bookCol),
		}
		q.Topic = field(row, topicCol)
		q.Purpose = field(row, purposeCol)
		*quotes = append(*quotes, q)
	}

	return nil
}

// BookVibes reads the per-book descriptor table. The first column is the
// book name; every remaining column must be numeric.
func (s *CSVSource) BookVibes() ([][]float64, error) {
	path := filepath.Join(s.dir, s.vibesFile)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open book vibes file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("book vibes file %s has no data rows", path)
	}

	vibes := make([][]float64, 0, len(records)-1)
	for i, row := range records[1:] {
		if len(row) < 2 {
			return nil, fmt.Errorf("book vibes row %d has no descriptor columns", i+1)
		}
		vec := make([]float64, len(row)-1)
		for j, cell := range row[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("book vibes row %d column %d: %w", i+1, j+1, err)
			}
			vec[j] = v
		}
		vibes = append(vibes, vec)
	}

	return vibes, nil
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

func field(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
