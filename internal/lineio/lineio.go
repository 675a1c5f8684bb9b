// Package lineio opens line-oriented listings that may be compressed.
//
// The codec is chosen by file extension: .gz (gzip), .zst (zstd) and .lz4
// are decoded transparently, anything else is read as is. "-" reads stdin.
package lineio

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hupe1980/genemanifest"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec identifies a compression format.
type Codec uint8

const (
	CodecNone Codec = iota
	CodecGzip
	CodecZstd
	CodecLZ4
)

// DetectCodec picks the codec for path by its extension.
func DetectCodec(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		return CodecGzip
	case ".zst", ".zstd":
		return CodecZstd
	case ".lz4":
		return CodecLZ4
	default:
		return CodecNone
	}
}

// Open opens path for reading, decoding it according to its extension.
// A missing file yields a *genemanifest.NotFoundError.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, genemanifest.NewNotFoundError(path, err)
		}
		return nil, fmt.Errorf("open input %s: %w", path, err)
	}
	rc, err := NewReader(f, DetectCodec(path))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("open input %s: %w", path, err)
	}
	return &stackedCloser{Reader: rc, closers: []io.Closer{rc, f}}, nil
}

// NewReader wraps r with a decoder for codec.
func NewReader(r io.Reader, codec Codec) (io.ReadCloser, error) {
	switch codec {
	case CodecGzip:
		return gzip.NewReader(r)
	case CodecZstd:
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return d.IOReadCloser(), nil
	case CodecLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return io.NopCloser(r), nil
	}
}

// Create creates path for writing, encoding according to its extension.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	var w io.WriteCloser
	switch DetectCodec(path) {
	case CodecGzip:
		w = gzip.NewWriter(f)
	case CodecZstd:
		w, err = zstd.NewWriter(f)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
	case CodecLZ4:
		w = lz4.NewWriter(f)
	default:
		return f, nil
	}
	return &stackedWriteCloser{Writer: w, closers: []io.Closer{w, f}}, nil
}

type stackedCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedCloser) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

type stackedWriteCloser struct {
	io.Writer
	closers []io.Closer
}

func (s *stackedWriteCloser) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
