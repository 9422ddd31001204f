package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	apperrors "fleetdesk/internal/errors"
)

// Store persists multipart file uploads under a base directory.
type Store struct {
	baseDir string
}

// NewStore creates an upload store rooted at baseDir.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// SaveFiles writes every file upload for the allow-listed field names and
// returns a mapping from field name to the stored paths. Fields outside the
// allow list are ignored. Stored names are randomized so a crafted client
// filename can never collide with or overwrite another upload.
func (s *Store) SaveFiles(form *multipart.Form, fields ...string) (map[string][]string, error) {
	if form == nil {
		return map[string][]string{}, nil
	}

	allowed := make(map[string]bool, len(fields))
	for _, f := range fields {
		allowed[f] = true
	}

	saved := make(map[string][]string)
	for name, headers := range form.File {
		if !allowed[name] {
			continue
		}
		for _, header := range headers {
			path, err := s.saveOne(name, header)
			if err != nil {
				return nil, err
			}
			saved[name] = append(saved[name], path)
		}
	}
	return saved, nil
}

func (s *Store) saveOne(field string, header *multipart.FileHeader) (string, error) {
	dir := filepath.Join(s.baseDir, field)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperrors.Internal(err)
	}

	src, err := header.Open()
	if err != nil {
		return "", apperrors.Validation("unreadable file upload")
	}
	defer src.Close()

	name := fmt.Sprintf("%s_%s", uuid.New(), sanitizeFilename(header.Filename))
	path := filepath.Join(dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", apperrors.Internal(err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", apperrors.Internal(err)
	}
	return path, nil
}

// sanitizeFilename strips everything but ascii alphanumerics, dots,
// underscores and dashes from a client-supplied filename.
func sanitizeFilename(name string) string {
	out := make([]rune, 0, len(name))
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9',
			c == '.', c == '_', c == '-':
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return "file"
	}
	return string(out)
}
