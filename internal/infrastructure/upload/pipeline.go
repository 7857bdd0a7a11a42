// Package upload implements the file ingestion pipeline: type and size
// filtering, an optional image transform, and persistence to the content
// directory. A single rejected file aborts the whole batch before anything is
// written.
package upload

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mercadito/commerce-api/internal/api/metrics"
	"github.com/mercadito/commerce-api/internal/core/domain"
)

const (
	// MaxFiles mirrors the product photo limit.
	MaxFiles = 4
	// MaxFileSize is the per-file cap in bytes (5 MiB).
	MaxFileSize = 5 << 20
)

var allowedExtensions = map[string]struct{}{
	".jpeg": {},
	".jpg":  {},
	".png":  {},
}

var allowedMIMETypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
}

// Pipeline validates and persists multipart uploads. With a nil Transform the
// file bytes are streamed to disk unchanged (direct strategy).
type Pipeline struct {
	dir       string
	transform Transform
	log       zerolog.Logger
	nowMilli  func() int64
}

func NewPipeline(dir string, transform Transform, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		dir:       dir,
		transform: transform,
		log:       log,
		nowMilli:  func() int64 { return time.Now().UnixMilli() },
	}
}

func (p *Pipeline) strategy() string {
	if p.transform == nil {
		return "direct"
	}
	return p.transform.Name()
}

// Store validates every file, then persists them all, returning stored
// references in input order. Validation failures reject the whole batch;
// nothing is written until every file has passed the filter.
func (p *Pipeline) Store(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > MaxFiles {
		metrics.UploadRejectedTotal.WithLabelValues("too_many_files").Inc()
		return nil, domain.ErrUploadTooMany
	}

	for _, fh := range files {
		if err := p.filter(fh); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	start := time.Now()
	refs := make([]string, 0, len(files))
	for _, fh := range files {
		if err := ctx.Err(); err != nil {
			p.discard(refs)
			return nil, err
		}

		ref, err := p.persist(fh)
		if err != nil {
			p.discard(refs)
			return nil, err
		}
		refs = append(refs, ref)
	}

	metrics.UploadedFilesTotal.WithLabelValues(p.strategy()).Add(float64(len(refs)))
	metrics.UploadDuration.WithLabelValues(p.strategy()).Observe(time.Since(start).Seconds())
	p.log.Info().Int("files", len(refs)).Str("strategy", p.strategy()).Msg("uploads stored")

	return refs, nil
}

// filter enforces the allow-list on both the declared MIME type and the
// filename extension, plus the per-file size cap. A .txt renamed to .jpg
// still fails on the MIME side, and an image posted with a bogus filename
// fails on the extension side.
func (p *Pipeline) filter(fh *multipart.FileHeader) error {
	if fh.Size > MaxFileSize {
		metrics.UploadRejectedTotal.WithLabelValues("too_large").Inc()
		return domain.ErrUploadTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		metrics.UploadRejectedTotal.WithLabelValues("bad_extension").Inc()
		return domain.ErrUploadType
	}

	mime := fh.Header.Get("Content-Type")
	if _, ok := allowedMIMETypes[mime]; !ok {
		metrics.UploadRejectedTotal.WithLabelValues("bad_mime_type").Inc()
		return domain.ErrUploadType
	}

	return nil
}

func (p *Pipeline) persist(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := fmt.Sprintf("%d-%s", p.nowMilli(), filepath.Base(fh.Filename))
	target := filepath.Join(p.dir, name)

	if p.transform == nil {
		dst, err := os.Create(target)
		if err != nil {
			return "", fmt.Errorf("create file: %w", err)
		}
		if _, err := io.Copy(dst, src); err != nil {
			dst.Close()
			_ = os.Remove(target)
			return "", fmt.Errorf("write file: %w", err)
		}
		if err := dst.Close(); err != nil {
			_ = os.Remove(target)
			return "", fmt.Errorf("close file: %w", err)
		}
	} else {
		data, err := p.transform.Apply(src)
		if err != nil {
			return "", err
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return "", fmt.Errorf("write file: %w", err)
		}
	}

	return filepath.ToSlash(target), nil
}

// discard removes files already written before a later one failed, keeping
// the no-partial-acceptance contract.
func (p *Pipeline) discard(refs []string) {
	for _, ref := range refs {
		if err := os.Remove(filepath.FromSlash(ref)); err != nil {
			p.log.Warn().Err(err).Str("path", ref).Msg("failed to discard partial upload")
		}
	}
}
