package vfm

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/xxh3"
)

// Hasher computes a deterministic digest over a file's full byte content.
// Implementations must be pure reads: no state, no side effects.
type Hasher interface {
	// Sum returns the content digest for the file at path.
	// Returns ErrSourceMissing if the path does not exist.
	Sum(path string) (string, error)
}

// hashChunkSize is the read buffer used when streaming file content.
const hashChunkSize = 64 * 1024

// XXH3Hasher streams file content through xxh3-128 and returns the digest
// as lowercase hex.
type XXH3Hasher struct{}

// NewXXH3Hasher returns the default content hasher.
func NewXXH3Hasher() XXH3Hasher { return XXH3Hasher{} }

func (XXH3Hasher) Sum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrSourceMissing, path)
		}
		return "", fmt.Errorf("opening file for hashing: %w", err)
	}
	defer f.Close()

	h := xxh3.New()
	buf := make([]byte, hashChunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}

	sum := h.Sum128().Bytes()
	return hex.EncodeToString(sum[:]), nil
}

var _ Hasher = XXH3Hasher{}
