// Package report writes a one-shot JSON summary of a decode run: a single
// marshal-and-write, no accumulation or merging against existing files.
package report

import (
	"encoding/json"
	"os"
	"time"

	"github.com/deploymenttheory/go-lz4-frame/internal/lz4frame"
)

// Summary is the JSON-serializable shape written to the report file.
type Summary struct {
	StartedAt         time.Time `json:"started_at"`
	Duration          string    `json:"duration"`
	InputBytes        int64     `json:"input_bytes"`
	OutputBytes       int64     `json:"output_bytes"`
	RawBlocks         int       `json:"raw_blocks"`
	CompressedBlocks  int       `json:"compressed_blocks"`
	BlockIndependence bool      `json:"block_independence"`
	BlockChecksum     bool      `json:"block_checksum_present"`
	ContentChecksum   bool      `json:"content_checksum_present"`
	Digest            string    `json:"digest,omitempty"`
}

// FromDecode builds a Summary from a lz4frame.Summary plus the timing and
// digest information the decoder itself doesn't track.
func FromDecode(s lz4frame.Summary, startedAt time.Time, duration time.Duration, digest string) Summary {
	return Summary{
		StartedAt:         startedAt,
		Duration:          duration.String(),
		InputBytes:        s.InputBytes,
		OutputBytes:       s.OutputBytes,
		RawBlocks:         s.RawBlocks,
		CompressedBlocks:  s.CompressedBlocks,
		BlockIndependence: s.Header.BlockIndependence,
		BlockChecksum:     s.Header.BlockChecksum,
		ContentChecksum:   s.Header.ContentChecksum,
		Digest:            digest,
	}
}

// Write marshals sum as indented JSON and writes it to path.
func Write(path string, sum Summary) error {
	data, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
