// Package audiostore persists uploaded voice recordings on the local
// filesystem and resolves stored filenames back to serving paths.
package audiostore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// MaxAudioSize is the upload ceiling, matching the Whisper API limit.
const MaxAudioSize = 25 * 1024 * 1024

type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes the recording for one session message and returns the stored
// filename. The extension of the original upload is kept, defaulting to webm.
func (s *Store) Save(sessionId uuid.UUID, originalFilename string, content []byte) (string, error) {
	if len(content) > MaxAudioSize {
		return "", fmt.Errorf("file too large, maximum size is %dMB", MaxAudioSize/(1024*1024))
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	ext := filepath.Ext(originalFilename)
	if ext == "" {
		ext = ".webm"
	}
	filename := fmt.Sprintf("voice_session_%s_msg_%s%s", sessionId, uuid.New(), ext)

	if err := os.WriteFile(filepath.Join(s.dir, filename), content, 0o644); err != nil {
		return "", fmt.Errorf("write audio file: %w", err)
	}
	return filename, nil
}

// Path returns the on-disk location of a stored filename.
func (s *Store) Path(filename string) string {
	return filepath.Join(s.dir, filename)
}

// Remove deletes a stored recording, ignoring files already gone.
func (s *Store) Remove(filename string) error {
	err := os.Remove(s.Path(filename))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// URL maps a stored filename to its public serving path.
func URL(filename *string) *string {
	if filename == nil || *filename == "" {
		return nil
	}
	u := "/api/audio/" + *filename
	return &u
}
