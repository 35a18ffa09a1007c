package engine

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

// WriteSnapshot writes the state as JSON, lz4 compressed when asked.
func (e *Engine) WriteSnapshot(w io.Writer, compress bool) error {
	if !compress {
		if err := json.NewEncoder(w).Encode(e.State); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
		return nil
	}
	zw := lz4.NewWriter(w)
	if err := json.NewEncoder(zw).Encode(e.State); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to flush snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot restores an engine written by WriteSnapshot.
func ReadSnapshot(r io.Reader, compressed bool) (*Engine, error) {
	if compressed {
		r = lz4.NewReader(r)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return FromData(data)
}
