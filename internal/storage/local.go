// Package storage keeps uploaded files on the local disk.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"tourdesk/internal/domain"

	"github.com/google/uuid"
)

// MaxUploadSize caps a single upload.
const MaxUploadSize = 5 << 20

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".pdf":  true,
}

// Local stores files under Dir and serves them below BaseURL.
type Local struct {
	Dir     string
	BaseURL string
	MaxSize int64
}

func NewLocal(dir, baseURL string) (Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Local{}, fmt.Errorf("create upload dir: %w", err)
	}
	return Local{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/"), MaxSize: MaxUploadSize}, nil
}

// Save writes r under a random name keeping the original extension and
// returns the public URL of the stored file.
func (l Local) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExt[ext] {
		return "", domain.ValidationError{Field: "file", Msg: "unsupported file type " + ext}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	limit := l.MaxSize
	if limit <= 0 {
		limit = MaxUploadSize
	}

	name := uuid.NewString() + ext
	full := filepath.Join(l.Dir, name)
	f, err := os.OpenFile(full, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", domain.InternalError{Msg: "failed to store file", Err: err}
	}
	n, err := io.Copy(f, io.LimitReader(r, limit+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > limit {
		err = errTooLarge
	}
	if err != nil {
		_ = os.Remove(full)
		if errors.Is(err, errTooLarge) {
			return "", domain.ValidationError{Field: "file", Msg: fmt.Sprintf("larger than %d MB", limit>>20)}
		}
		return "", domain.InternalError{Msg: "failed to store file", Err: err}
	}
	return l.BaseURL + path.Join("/uploads", name), nil
}

var errTooLarge = errors.New("file too large")
