package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadResume(t *testing.T) {
	t.Run("no path", func(t *testing.T) {
		r, err := loadResume("", 100)
		require.NoError(t, err)
		assert.Nil(t, r)
	})

	t.Run("pdf", func(t *testing.T) {
		path := writeTemp(t, "Jane Doe CV.pdf", pdfBytes)

		r, err := loadResume(path, 1024)
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe CV.pdf", r.Name)
		assert.Equal(t, "application/pdf", r.MimeType)
		assert.Equal(t, int64(len(pdfBytes)), r.SizeBytes)
		assert.Equal(t, pdfBytes, string(r.Content))
	})

	t.Run("extension from content", func(t *testing.T) {
		path := writeTemp(t, "cv", pdfBytes)

		r, err := loadResume(path, 1024)
		require.NoError(t, err)
		assert.Equal(t, "cv.pdf", r.Name)
	})

	t.Run("at the limit", func(t *testing.T) {
		path := writeTemp(t, "cv.txt", "0123456789")

		_, err := loadResume(path, 10)
		assert.NoError(t, err)

		_, err = loadResume(path, 9)
		assert.Error(t, err)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := loadResume(t.TempDir(), 1024)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is a directory")
	})

	t.Run("missing", func(t *testing.T) {
		_, err := loadResume(filepath.Join(t.TempDir(), "nope.pdf"), 1024)
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
