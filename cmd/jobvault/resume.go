package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github.com/jonathan/jobvault/internal/types"
)

// loadResume reads the résumé at path, refusing files over maxBytes. The
// MIME type is sniffed from the content; a name without an extension gets
// the detected one.
func loadResume(path string, maxBytes int64) (*types.ResumeDescriptor, error) {
	if path == "" {
		return nil, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read résumé: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("résumé %s is a directory", path)
	}
	if info.Size() > maxBytes {
		return nil, fmt.Errorf("résumé is %.1f MB; the limit is %d MB",
			float64(info.Size())/(1024*1024), maxBytes/(1024*1024))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read résumé: %w", err)
	}

	mtype := mimetype.Detect(content)
	name := filepath.Base(path)
	if filepath.Ext(name) == "" {
		name += mtype.Extension()
	}

	return &types.ResumeDescriptor{
		Name:      name,
		MimeType:  mtype.String(),
		SizeBytes: int64(len(content)),
		Content:   content,
	}, nil
}
