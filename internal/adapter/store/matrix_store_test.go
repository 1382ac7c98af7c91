package store

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *BoltMatrixStore {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "matrices.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenEmptyDatabase(t *testing.T) {
	s := openTestStore(t)

	hybrid, err := s.Hybrid()
	if err != nil {
		t.Fatal(err)
	}
	if len(hybrid) != 0 {
		t.Errorf("expected empty hybrid matrix, got %d rows", len(hybrid))
	}
}

func TestWriteAndReloadMatrices(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "matrices.db")

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}

	hybrid := [][]float32{
		{1, 0, 0.5},
		{0, 1, -0.25},
	}
	encodings := [][]float32{
		{0.1, 0.2},
		{0.3, 0.4},
	}

	if err := s.WriteHybrid(hybrid); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteEncodings(encodings); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	// Reopen and verify row order and values survived.
	s2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	got, err := s2.Hybrid()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 hybrid rows, got %d", len(got))
	}
	for i, row := range hybrid {
		for j, v := range row {
			if got[i][j] != v {
				t.Errorf("hybrid[%d][%d] = %v, want %v", i, j, got[i][j], v)
			}
		}
	}

	enc, err := s2.Encodings()
	if err != nil {
		t.Fatal(err)
	}
	if len(enc) != 2 || enc[1][0] != 0.3 {
		t.Errorf("unexpected encoding matrix: %v", enc)
	}
}

func TestWriteReplacesExistingMatrix(t *testing.T) {
	s := openTestStore(t)

	if err := s.WriteHybrid([][]float32{{1}, {2}, {3}}); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteHybrid([][]float32{{9}}); err != nil {
		t.Fatal(err)
	}

	hybrid, err := s.Hybrid()
	if err != nil {
		t.Fatal(err)
	}
	if len(hybrid) != 1 || hybrid[0][0] != 9 {
		t.Errorf("expected single replaced row, got %v", hybrid)
	}
}

func TestRowCodecRoundTrip(t *testing.T) {
	row := []float32{0, 1, -1, 0.7071, 3.1415927}

	decoded := decodeRow(encodeRow(row))

	if len(decoded) != len(row) {
		t.Fatalf("length mismatch: %d vs %d", len(decoded), len(row))
	}
	for i := range row {
		if decoded[i] != row[i] {
			t.Errorf("decoded[%d] = %v, want %v", i, decoded[i], row[i])
		}
	}
}
