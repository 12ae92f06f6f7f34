// internals/features/epapers/editions/service/storage.go
package service

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Bucket names. The partition is organizational only.
const (
	BucketPapers     = "papers"
	BucketPages      = "pages"
	BucketThumbnails = "thumbnails"
	BucketCrops      = "crops"
)

// WebPrefix is the public mount point of the uploads dir.
const WebPrefix = "/uploads"

// ArtifactStore places derived files on disk under per-kind buckets and
// maps between disk paths and the web paths stored in the DB.
type ArtifactStore struct {
	BaseDir string
}

func NewArtifactStore(baseDir string) *ArtifactStore {
	return &ArtifactStore{BaseDir: baseDir}
}

// EnsureDirs creates every bucket dir. Called once at startup.
func (s *ArtifactStore) EnsureDirs() error {
	for _, bucket := range []string{BucketPapers, BucketPages, BucketThumbnails, BucketCrops} {
		if err := os.MkdirAll(filepath.Join(s.BaseDir, bucket), 0o755); err != nil {
			return fmt.Errorf("create bucket %s: %w", bucket, err)
		}
	}
	return nil
}

/* =========================
   Naming
   ========================= */

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

func sanitizeFilename(filename string) string {
	return unsafeFilenameChars.ReplaceAllString(filename, "_")
}

// PageFilename: {uuid}-{n}.jpg — collision-free across concurrent uploads.
func PageFilename(baseID uuid.UUID, n int) string {
	return fmt.Sprintf("%s-%d.jpg", baseID, n)
}

func ThumbnailFilename(baseID uuid.UUID) string {
	return fmt.Sprintf("%s_thumb.jpg", baseID)
}

func CropFilename(token string) string {
	return fmt.Sprintf("crop_%s.jpg", token)
}

func SourceFilename(baseID uuid.UUID, original string) string {
	return fmt.Sprintf("%s-%s", baseID, sanitizeFilename(original))
}

/* =========================
   Path mapping
   ========================= */

// AbsPath is the on-disk location of a file in a bucket.
func (s *ArtifactStore) AbsPath(bucket, name string) string {
	return filepath.Join(s.BaseDir, bucket, name)
}

// WebPath is the servable path persisted in the DB, e.g.
// /uploads/pages/{uuid}-1.jpg.
func (s *ArtifactStore) WebPath(bucket, name string) string {
	return WebPrefix + "/" + bucket + "/" + name
}

// AbsFromWebPath maps a stored web path back to disk. Paths outside the
// uploads mount resolve to "".
func (s *ArtifactStore) AbsFromWebPath(webPath string) string {
	rel, ok := strings.CutPrefix(webPath, WebPrefix+"/")
	if !ok {
		return ""
	}
	rel = filepath.Clean(rel)
	if rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	return filepath.Join(s.BaseDir, rel)
}

/* =========================
   IO
   ========================= */

// Write stores raw bytes into a bucket and returns the web path.
func (s *ArtifactStore) Write(bucket, name string, data []byte) (string, error) {
	if err := os.WriteFile(s.AbsPath(bucket, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write %s/%s: %w", bucket, name, err)
	}
	return s.WebPath(bucket, name), nil
}

// Remove deletes the file behind a web path. Idempotent: a missing file
// is not an error.
func (s *ArtifactStore) Remove(webPath string) error {
	abs := s.AbsFromWebPath(webPath)
	if abs == "" {
		return nil
	}
	if _, err := os.Stat(abs); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(abs)
}

// RemoveAbs deletes a file by disk path, tolerant of it being gone.
func (s *ArtifactStore) RemoveAbs(abs string) error {
	if abs == "" {
		return nil
	}
	if _, err := os.Stat(abs); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(abs)
}
