package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileRepository stores user uploads. Objects are private and handed out
// through presigned URLs.
type FileRepository interface {
	Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error)
	Delete(ctx context.Context, objectPath string) error
	GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error)
}

// Object kinds used as the second path segment
const (
	KindAvatar     = "avatars"
	KindReport     = "reports"
	KindAttachment = "attachments"
)

// GenerateObjectPath creates a unique object path of the form
// <ownerID>/<kind>/<uuid>_<variant><ext>
func GenerateObjectPath(ownerID int32, kind string, variant string, ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	filename := fmt.Sprintf("%s_%s%s", uuid.New().String(), variant, strings.ToLower(ext))
	return path.Join(fmt.Sprintf("%d", ownerID), kind, filename)
}
