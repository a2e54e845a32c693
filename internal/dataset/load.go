// Package dataset reads line-delimited fine-tuning records and promotes them
// from raw JSON into typed conversations.
package dataset

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"math"
	"os"

	"golang.org/x/crypto/blake2b"
)

// scannerBufferSize is the initial line buffer; lines may grow past it.
const scannerBufferSize = 1024 * 1024

// RawRecord is one undecoded line of the input file.
// Line is the 1-based physical line number.
type RawRecord struct {
	Line int
	Data []byte
}

// File is the fully loaded dataset.
type File struct {
	Path string
	// Fingerprint is the hex BLAKE2b-256 digest of the file contents.
	Fingerprint string
	Records     []RawRecord
}

// Load reads the whole file at path into memory.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset.Load: open: %w", err)
	}
	defer f.Close()

	file, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("dataset.Load: %s: %w", path, err)
	}
	file.Path = path
	return file, nil
}

// Read splits r into raw records and fingerprints the bytes it consumed.
func Read(r io.Reader) (*File, error) {
	hash, err := blake2b.New256(nil)
	if err != nil {
		return nil, fmt.Errorf("dataset.Read: blake2b: %w", err)
	}

	scanner := bufio.NewScanner(io.TeeReader(r, hash))
	buf := make([]byte, 0, scannerBufferSize)
	scanner.Buffer(buf, math.MaxInt)

	var records []RawRecord
	line := 0
	for scanner.Scan() {
		line++
		// Scanner reuses its buffer between calls.
		data := bytes.Clone(scanner.Bytes())
		records = append(records, RawRecord{Line: line, Data: data})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dataset.Read: scan line %d: %w", line+1, err)
	}

	return &File{
		Fingerprint: hex.EncodeToString(hash.Sum(nil)),
		Records:     records,
	}, nil
}
