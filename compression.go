package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// EncodingForPath guesses the capture file's compression from its extension.
func EncodingForPath(path string) string {
	switch {
	case strings.HasSuffix(path, ".gz"):
		return "gzip"
	case strings.HasSuffix(path, ".zst"):
		return "zstd"
	case strings.HasSuffix(path, ".deflate"):
		return "deflate"
	default:
		return "none"
	}
}

// DecompressInput wraps a capture file reader according to its encoding.
func DecompressInput(bufReader *bufio.Reader, lib string) (io.Reader, error) {
	switch lib {
	case "none":
		return bufReader, nil
	case "deflate":
		return flate.NewReader(bufReader), nil
	case "gzip":
		reader, err := gzip.NewReader(bufReader)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return reader, nil
	case "zstd":
		reader, err := zstd.NewReader(bufReader)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		return reader.IOReadCloser(), nil
	default:
		return nil, fmt.Errorf("unsupported compression: %s", lib)
	}
}
