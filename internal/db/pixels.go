package db

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
)

// encodePixels packs values as gzip-compressed little-endian float64.
func encodePixels(values []float64) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if err := binary.Write(zw, binary.LittleEndian, values); err != nil {
		return nil, fmt.Errorf("encode pixels: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("encode pixels: %w", err)
	}
	return buf.Bytes(), nil
}

// decodePixels reverses encodePixels.
func decodePixels(blob []byte) ([]float64, error) {
	zr, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("decode pixels: %w", err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("decode pixels: %w", err)
	}
	if len(raw)%8 != 0 {
		return nil, fmt.Errorf("decode pixels: %d bytes is not a whole number of values", len(raw))
	}
	values := make([]float64, len(raw)/8)
	if err := binary.Read(bytes.NewReader(raw), binary.LittleEndian, values); err != nil {
		return nil, fmt.Errorf("decode pixels: %w", err)
	}
	return values, nil
}
