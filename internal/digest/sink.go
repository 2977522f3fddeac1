package digest

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Sink writes a rendered digest and returns the artifact path. Only
// invoked when there is content to write.
type Sink interface {
	Write(agentSlug, dateStamp, markdown string) (string, error)
}

// FileSink writes digests under <dir>/<agent>/<date>.md.
type FileSink struct {
	dir string
}

// NewFileSink creates a FileSink rooted at dir.
func NewFileSink(dir string) *FileSink {
	return &FileSink{dir: dir}
}

// Write persists the markdown and returns the file path.
func (s *FileSink) Write(agentSlug, dateStamp, markdown string) (string, error) {
	dir := filepath.Join(s.dir, agentSlug)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", fmt.Errorf("create digest dir for %s: %w", agentSlug, err)
	}

	path := filepath.Join(dir, dateStamp+".md")
	if err := os.WriteFile(path, []byte(markdown), filePerm); err != nil {
		return "", fmt.Errorf("write digest %s/%s: %w", agentSlug, dateStamp, err)
	}
	return path, nil
}
