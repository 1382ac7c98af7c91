package ranker

import (
	"math"
	"sort"
)

// Result is one ranked corpus row.
type Result struct {
	Index         int
	Similarity    float64
	Compatibility float64
}

// Rank scores query against every row of matrix by cosine similarity and
// returns the top k rows, ordered descending by similarity with ties broken
// by lower index. exclude, when non-negative, removes that row before the
// top-k cut (used for "more like this" so a quote never matches itself).
// k larger than the matrix returns every available row.
func Rank(query []float32, matrix [][]float32, k, exclude int) []Result {
	if k < 0 {
		k = 0
	}

	scored := make([]Result, 0, len(matrix))
	for i, row := range matrix {
		if i == exclude {
			continue
		}
		sim := cosineSimilarity(query, row)
		scored = append(scored, Result{
			Index:         i,
			Similarity:    sim,
			Compatibility: Compatibility(sim),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Similarity != scored[j].Similarity {
			return scored[i].Similarity > scored[j].Similarity
		}
		return scored[i].Index < scored[j].Index
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k]
}

// Compatibility rescales a cosine similarity from [-1,1] to a [0,100]
// percentage, rounded to one decimal place.
func Compatibility(similarity float64) float64 {
	pct := (similarity + 1) * 50
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return math.Round(pct*10) / 10
}

// cosineSimilarity calculates the cosine similarity between two vectors.
func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dotProduct, normA, normB float64
	for i := 0; i < n; i++ {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
