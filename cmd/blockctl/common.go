package main

import (
	"bytes"
	"fmt"

	"github.com/blockkit/blockkit/block"
	"github.com/blockkit/blockkit/internal/mmfile"
	"github.com/blockkit/blockkit/snapshot"
)

// loadAny loads a snapshot container or a raw blob, detected by signature.
// The returned block owns a private copy of the bytes, so the mapping is
// released before returning.
func loadAny(path string) (*block.Block, bool, error) {
	data, cleanup, err := mmfile.Map(path)
	if err != nil {
		return nil, false, err
	}
	defer cleanup()

	if len(data) >= len(snapshot.Signature) &&
		bytes.Equal(data[:len(snapshot.Signature)], snapshot.Signature) {
		b, err := snapshot.Read(bytes.NewReader(data))
		if err != nil {
			return nil, true, fmt.Errorf("reading snapshot %s: %w", path, err)
		}
		return b, true, nil
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	b, err := block.Attach(buf)
	if err != nil {
		return nil, false, fmt.Errorf("reading blob %s: %w", path, err)
	}
	return b, false, nil
}
