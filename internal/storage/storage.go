// Package storage keeps uploaded files and hands back the URL they are
// served from.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

type Storage interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
}

var whitespace = regexp.MustCompile(`\s+`)

// ObjectName builds "<unixMillis>_<base><ext>" with whitespace in the base
// replaced by '_'. Directory parts of filename are dropped.
func ObjectName(now time.Time, filename string) string {
	filename = filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)
	base = whitespace.ReplaceAllString(strings.TrimSpace(base), "_")
	if base == "" || base == "." || base == "/" {
		base = "file"
	}
	return fmt.Sprintf("%d_%s%s", now.UnixMilli(), base, ext)
}
