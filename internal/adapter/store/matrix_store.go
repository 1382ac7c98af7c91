package store

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"go.etcd.io/bbolt"
)

var (
	bucketHybrid    = []byte("hybrid")
	bucketEncodings = []byte("encodings")
)

// BoltMatrixStore keeps the precomputed per-quote matrices in a BoltDB file.
// Rows are keyed by 4-byte big-endian corpus index so bucket iteration order
// is corpus row order. Matrices are read fully into memory at open time; the
// database is only written by the offline precompute path.
type BoltMatrixStore struct {
	db        *bbolt.DB
	hybrid    [][]float32
	encodings [][]float32
}

// Open opens (creating if needed) the matrix database at path and loads both
// matrices into memory.
func Open(path string) (*BoltMatrixStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open matrix database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketHybrid, bucketEncodings} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create matrix buckets: %w", err)
	}

	s := &BoltMatrixStore{db: db}
	if s.hybrid, err = s.loadMatrix(bucketHybrid); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load hybrid matrix: %w", err)
	}
	if s.encodings, err = s.loadMatrix(bucketEncodings); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load encoding matrix: %w", err)
	}

	return s, nil
}

// Hybrid returns the hybrid feature matrix in corpus row order.
func (s *BoltMatrixStore) Hybrid() ([][]float32, error) {
	return s.hybrid, nil
}

// Encodings returns the semantic encoding matrix in corpus row order.
func (s *BoltMatrixStore) Encodings() ([][]float32, error) {
	return s.encodings, nil
}

// WriteHybrid replaces the stored hybrid matrix with rows.
func (s *BoltMatrixStore) WriteHybrid(rows [][]float32) error {
	if err := s.writeMatrix(bucketHybrid, rows); err != nil {
		return err
	}
	s.hybrid = rows
	return nil
}

// WriteEncodings replaces the stored encoding matrix with rows.
func (s *BoltMatrixStore) WriteEncodings(rows [][]float32) error {
	if err := s.writeMatrix(bucketEncodings, rows); err != nil {
		return err
	}
	s.encodings = rows
	return nil
}

// Close closes the underlying database. Loaded matrices stay usable.
func (s *BoltMatrixStore) Close() error {
	return s.db.Close()
}

func (s *BoltMatrixStore) loadMatrix(bucket []byte) ([][]float32, error) {
	var rows [][]float32

	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}

		return b.ForEach(func(k, v []byte) error {
			if len(k) != 4 {
				return fmt.Errorf("malformed row key of length %d", len(k))
			}
			idx := int(binary.BigEndian.Uint32(k))
			if idx != len(rows) {
				return fmt.Errorf("row gap: expected index %d, found %d", len(rows), idx)
			}
			rows = append(rows, decodeRow(v))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (s *BoltMatrixStore) writeMatrix(bucket []byte, rows [][]float32) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucket); err != nil && err != bbolt.ErrBucketNotFound {
			return err
		}
		b, err := tx.CreateBucket(bucket)
		if err != nil {
			return err
		}

		key := make([]byte, 4)
		for i, row := range rows {
			binary.BigEndian.PutUint32(key, uint32(i))
			if err := b.Put(key, encodeRow(row)); err != nil {
				return err
			}
		}
		return nil
	})
}

func encodeRow(row []float32) []byte {
	buf := make([]byte, 4*len(row))
	for i, v := range row {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}

func decodeRow(buf []byte) []float32 {
	row := make([]float32, len(buf)/4)
	for i := range row {
		row[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return row
}
