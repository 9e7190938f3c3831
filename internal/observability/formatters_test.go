package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/jobvault/internal/config"
	"github.com/jonathan/jobvault/internal/labels"
	"github.com/jonathan/jobvault/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintSnapshot(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	snap := &types.Snapshot{
		ID:        "abc",
		Company:   "Acme Corp",
		Role:      "Senior Engineer",
		URL:       "https://acme.com/jobs/1",
		ApplyKind: types.ApplyExternal,
		JDText:    "one\ntwo\nthree\nfour\nfive\nsix\nseven",
	}
	resume := &types.ResumeDescriptor{Name: "cv.pdf", MimeType: "application/pdf", SizeBytes: 2048}

	p.PrintSnapshot(snap, resume)
	output := buf.String()

	assert.Contains(t, output, "SNAPSHOT")
	assert.Contains(t, output, "Acme Corp")
	assert.Contains(t, output, "Senior Engineer")
	assert.Contains(t, output, "EXT")
	assert.Contains(t, output, "cv.pdf (application/pdf, 2.0 KB)")
	assert.Contains(t, output, "five")
	assert.NotContains(t, output, "six")
	assert.Contains(t, output, "... and 2 more lines")
}

func TestPrintSnapshot_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSnapshot(nil, nil)

	assert.Empty(t, buf.String())
}

func TestPrintSnapshot_EmptyFields(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSnapshot(&types.Snapshot{URL: "https://x.io"}, nil)
	output := buf.String()

	assert.Contains(t, output, "Company:  -")
	assert.NotContains(t, output, "Job description")
	assert.NotContains(t, output, "Résumé")
}

func TestPrintLabels(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintLabels(labels.Labels{Company: "Acme", Role: "Untitled-abc123"})
	output := buf.String()

	assert.Contains(t, output, "FOLDER LABELS")
	assert.Contains(t, output, "Untitled-abc123")
}

func TestPrintSaveResult(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		var buf bytes.Buffer
		NewPrinter(&buf).PrintSaveResult(types.SaveResult{OK: true, DirName: "2024-03-07__Acme__Dev", Path: "2024-03/07/2024-03-07__Acme__Dev"})
		assert.Contains(t, buf.String(), "saved")
		assert.Contains(t, buf.String(), "2024-03-07__Acme__Dev")
	})

	t.Run("failed", func(t *testing.T) {
		var buf bytes.Buffer
		NewPrinter(&buf).PrintSaveResult(types.SaveResult{Error: "permission denied"})
		assert.Contains(t, buf.String(), "failed")
		assert.Contains(t, buf.String(), "permission denied")
	})
}

func TestPrintSettings(t *testing.T) {
	now := time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	cfg := &config.Config{
		BaseDir:             "/data/jobs",
		BaseDirGranted:      true,
		CaptureEA:           true,
		DisableEATodayUntil: now.Add(2 * time.Hour).UnixMilli(),
	}
	NewPrinter(&buf).PrintSettings("/cfg/settings.json", cfg, now)
	output := buf.String()

	assert.Contains(t, output, "/data/jobs")
	assert.Contains(t, output, "granted")
	assert.Contains(t, output, "until 2024-03-07 12:00")
	assert.Contains(t, output, "Résumé limit:  20 MB")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("T", strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 B", formatSize(512))
	assert.Equal(t, "1.5 KB", formatSize(1536))
	assert.Equal(t, "3.0 MB", formatSize(3*1024*1024))
}
