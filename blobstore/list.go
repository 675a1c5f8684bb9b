package blobstore

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/hupe1980/genemanifest"
)

// WriteKeys lists bucket/prefix and writes one key per line to w, skipping
// keys that represent directories (trailing slash). It returns the number of
// keys written.
func WriteKeys(ctx context.Context, l Lister, bucket, prefix string, w io.Writer, logger *genemanifest.Logger) (int, error) {
	logger = genemanifest.OrNoop(logger)
	logger.InfoContext(ctx, "listing objects", "bucket", bucket, "prefix", prefix)

	keys, err := l.List(ctx, bucket, prefix)
	if err != nil {
		return 0, fmt.Errorf("list %s/%s: %w", bucket, prefix, err)
	}

	bw := bufio.NewWriter(w)
	n := 0
	for _, key := range keys {
		if strings.HasSuffix(key, "/") {
			continue
		}
		if _, err := bw.WriteString(key); err != nil {
			return n, err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return n, err
		}
		n++
	}
	if err := bw.Flush(); err != nil {
		return n, err
	}

	if n == 0 {
		logger.WarnContext(ctx, "no objects found", "bucket", bucket, "prefix", prefix)
	} else {
		logger.InfoContext(ctx, "objects listed", "bucket", bucket, "prefix", prefix, "count", n)
	}
	return n, nil
}
