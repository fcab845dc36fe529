// ABOUTME: Vector BLOB encoding and cosine distance for corpus search
// ABOUTME: Vectors are stored as little-endian float64 sequences
package store

import (
	"encoding/binary"
	"fmt"
	"math"
)

// vectorToBlob encodes a float64 vector as a little-endian byte sequence.
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector decodes a little-endian byte sequence back into a vector.
func blobToVector(blob []byte) ([]float64, error) {
	if len(blob)%8 != 0 {
		return nil, fmt.Errorf("invalid vector blob length: %d", len(blob))
	}
	vector := make([]float64, len(blob)/8)
	for i := range vector {
		vector[i] = math.Float64frombits(binary.LittleEndian.Uint64(blob[i*8:]))
	}
	return vector, nil
}

// cosineDistance returns 1 - cosine similarity, so that lower values mean
// closer matches. Mismatched or zero vectors get the maximum distance.
func cosineDistance(a, b []float64) float64 {
	if len(a) != len(b) {
		return 1.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 1.0
	}

	return 1.0 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
