package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobvault/internal/config"
	"github.com/jonathan/jobvault/internal/types"
	"github.com/jonathan/jobvault/internal/vault"
)

const pdfBytes = "%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n"

func parseResult(t *testing.T, stdout string) types.SaveResult {
	t.Helper()
	var result types.SaveResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result), stdout)
	return result
}

func today() string {
	_, _, ymd := vault.DateParts(time.Now())
	return ymd
}

func TestSaveCommand_EndToEnd(t *testing.T) {
	isolateSettings(t)
	root := t.TempDir()

	res := runCLI(t, "", "folder", "set", root, "--yes")
	require.NoError(t, res.err, res.stderr)

	jd := writeTemp(t, "jd.txt", "  Build APIs in Go.  \n")
	cv := writeTemp(t, "cv.pdf", pdfBytes)

	res = runCLI(t, "", "save",
		"--company", "Acme Corp",
		"--role", "Backend Engineer",
		"--url", "https://acme.com/jobs/123",
		"--jd-file", jd,
		"--apply-kind", "MANUAL",
		"--resume", cv,
	)
	require.NoError(t, res.err, res.stderr)

	result := parseResult(t, res.stdout)
	require.True(t, result.OK, result.Error)
	assert.Equal(t, today()+"__Acme-Corp__Backend-Engineer", result.DirName)
	assert.True(t, strings.HasPrefix(result.Path, root))

	link, err := os.ReadFile(filepath.Join(result.Path, types.LinkFile))
	require.NoError(t, err)
	assert.Equal(t, "https://acme.com/jobs/123\n", string(link))

	jdMD, err := os.ReadFile(filepath.Join(result.Path, types.JDFile))
	require.NoError(t, err)
	assert.Contains(t, string(jdMD), "# Backend Engineer\n**Company:** Acme Corp\n")
	assert.True(t, strings.HasSuffix(string(jdMD), "\n\nBuild APIs in Go.\n"))

	data, err := os.ReadFile(filepath.Join(result.Path, types.MetadataFile))
	require.NoError(t, err)
	var meta types.RecordMetadata
	require.NoError(t, json.Unmarshal(data, &meta))
	assert.NotEmpty(t, meta.ID)
	assert.Equal(t, types.StatusApplied, meta.Status)
	require.NotNil(t, meta.Resume)
	assert.Equal(t, "cv.pdf", meta.Resume.Name)
	assert.Equal(t, "application/pdf", meta.Resume.Type)
	assert.Equal(t, int64(len(pdfBytes)), meta.Resume.Size)

	stored, err := os.ReadFile(filepath.Join(result.Path, "resume.pdf"))
	require.NoError(t, err)
	assert.Equal(t, pdfBytes, string(stored))

	res = runCLI(t, "", "verify", result.Path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "OK:")
}

func TestSaveCommand_SecondSaveGetsSuffix(t *testing.T) {
	isolateSettings(t)
	root := t.TempDir()
	require.NoError(t, runCLI(t, "", "folder", "set", root, "--yes").err)

	var names []string
	for i := 0; i < 2; i++ {
		res := runCLI(t, "", "save", "--company", "Acme", "--role", "Dev", "--url", "https://acme.com/j/1")
		require.NoError(t, res.err, res.stderr)
		names = append(names, parseResult(t, res.stdout).DirName)
	}
	assert.Equal(t, today()+"__Acme__Dev", names[0])
	assert.Equal(t, today()+"__Acme__Dev__2", names[1])
}

func TestSaveCommand_NoFolder(t *testing.T) {
	isolateSettings(t)

	res := runCLI(t, "", "save", "--url", "https://acme.com/jobs/1")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "save failed")

	result := parseResult(t, res.stdout)
	assert.False(t, result.OK)
	assert.Contains(t, result.Error, "no storage root selected")
}

func TestSaveCommand_MissingURL(t *testing.T) {
	isolateSettings(t)

	res := runCLI(t, "", "save", "--company", "Acme", "--base-dir", t.TempDir(), "--yes")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "invalid save request")
	assert.Empty(t, res.stdout)
}

func TestSaveCommand_PermissionPrompt(t *testing.T) {
	isolateSettings(t)
	root := t.TempDir()

	res := runCLI(t, "n\n", "save", "--url", "https://acme.com/jobs/1", "--base-dir", root)
	require.Error(t, res.err)
	assert.Contains(t, res.stderr, "Allow jobvault to read and write")
	assert.Contains(t, parseResult(t, res.stdout).Error, "permission denied")

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries, "denied save must not touch the folder")

	res = runCLI(t, "y\n", "save", "--url", "https://acme.com/jobs/1", "--base-dir", root)
	require.NoError(t, res.err, res.stderr)
	assert.True(t, parseResult(t, res.stdout).OK)

	// consent to an override lasts for one run
	res = runCLI(t, "", "save", "--url", "https://acme.com/jobs/1", "--base-dir", root)
	require.Error(t, res.err)
	assert.Contains(t, res.stderr, "Allow jobvault")
}

func TestSaveCommand_ConfiguredFolderConsentIsRemembered(t *testing.T) {
	isolateSettings(t)
	root := t.TempDir()
	require.NoError(t, runCLI(t, "y\n", "folder", "set", root).err)

	for _, args := range [][]string{
		{"save", "--url", "https://acme.com/jobs/1"},
		{"save", "--url", "https://acme.com/jobs/1", "--base-dir", root},
	} {
		res := runCLI(t, "", args...)
		require.NoError(t, res.err, res.stderr)
		assert.NotContains(t, res.stderr, "Allow jobvault")
	}
}

func TestSaveCommand_BaseDirOverrideLeavesSettings(t *testing.T) {
	settings := isolateSettings(t)
	configured, other := t.TempDir(), t.TempDir()
	require.NoError(t, runCLI(t, "", "folder", "set", configured, "--yes").err)

	res := runCLI(t, "", "save", "--url", "https://acme.com/jobs/1", "--base-dir", other, "--yes")
	require.NoError(t, res.err, res.stderr)
	assert.True(t, strings.HasPrefix(parseResult(t, res.stdout).Path, other))

	cfg, err := config.LoadConfig(settings)
	require.NoError(t, err)
	assert.Equal(t, configured, cfg.BaseDir)
	assert.True(t, cfg.BaseDirGranted)

	res = runCLI(t, "", "save", "--url", "https://acme.com/jobs/1")
	require.NoError(t, res.err, res.stderr)
	assert.True(t, strings.HasPrefix(parseResult(t, res.stdout).Path, configured))

	entries, err := os.ReadDir(other)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "only the override save landed in the other folder")
}

func TestSaveCommand_RevokedFolder(t *testing.T) {
	isolateSettings(t)
	root := t.TempDir()
	require.NoError(t, runCLI(t, "", "folder", "set", root, "--yes").err)
	require.NoError(t, runCLI(t, "", "folder", "revoke").err)

	res := runCLI(t, "", "save", "--url", "https://acme.com/jobs/1")
	require.Error(t, res.err)
	assert.Contains(t, parseResult(t, res.stdout).Error, "permission denied")
}

func TestSaveCommand_SnapshotFile(t *testing.T) {
	isolateSettings(t)
	root := t.TempDir()

	snap := writeTemp(t, "snap.json", `{
		"id": "snap-1",
		"url": "https://boards.greenhouse.io/acme/jobs/4012345",
		"title": "Site Reliability Engineer - Greenhouse",
		"jdText": "Keep things up.",
		"createdAt": 1709821800000
	}`)

	res := runCLI(t, "", "save", "--snapshot", snap, "--base-dir", root, "--yes")
	require.NoError(t, res.err, res.stderr)

	result := parseResult(t, res.stdout)
	assert.Equal(t, today()+"__Greenhouse__Site-Reliability-Engineer", result.DirName)

	data, err := os.ReadFile(filepath.Join(result.Path, types.MetadataFile))
	require.NoError(t, err)
	var meta types.RecordMetadata
	require.NoError(t, json.Unmarshal(data, &meta))
	assert.Equal(t, "snap-1", meta.ID)
	assert.Equal(t, int64(1709821800000), meta.CreatedAt)
}

func TestSaveCommand_EasyApplyGate(t *testing.T) {
	isolateSettings(t)
	root := t.TempDir()
	require.NoError(t, runCLI(t, "", "folder", "set", root, "--yes").err)

	args := []string{"save", "--url", "https://www.linkedin.com/jobs/view/1", "--apply-kind", "EA"}

	res := runCLI(t, "", args...)
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "Skipped: EA disabled", "capture_ea is off by default")
	assert.Empty(t, res.stdout)

	require.NoError(t, runCLI(t, "", "settings", "set", "capture_ea", "true").err)
	res = runCLI(t, "", args...)
	require.NoError(t, res.err, res.stderr)
	assert.True(t, parseResult(t, res.stdout).OK)

	require.NoError(t, runCLI(t, "", "easy-apply", "disable", "--scope", "today").err)
	res = runCLI(t, "", args...)
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "Skipped: EA disabled")

	require.NoError(t, runCLI(t, "", "easy-apply", "enable").err)
	res = runCLI(t, "", args...)
	require.NoError(t, res.err, res.stderr)
	assert.True(t, parseResult(t, res.stdout).OK)
}

func TestSaveCommand_ExternalGate(t *testing.T) {
	isolateSettings(t)

	res := runCLI(t, "", "save", "--url", "https://acme.com/jobs/1", "--apply-kind", "EXT", "--base-dir", t.TempDir(), "--yes")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "Skipped: EXT capture off")
}

func TestSaveCommand_ResumeTooLarge(t *testing.T) {
	settings := isolateSettings(t)
	cfg := &config.Config{ResumeMaxMB: 1}
	require.NoError(t, cfg.Save(settings))

	big := writeTemp(t, "big.pdf", strings.Repeat("x", 1024*1024+1))

	res := runCLI(t, "", "save", "--url", "https://acme.com/jobs/1", "--resume", big, "--base-dir", t.TempDir(), "--yes")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "the limit is 1 MB")
}

func TestSaveCommand_JDFromStdin(t *testing.T) {
	isolateSettings(t)
	root := t.TempDir()

	res := runCLI(t, "Paste of the description\n", "save", "--url", "https://acme.com/jobs/1", "--jd-file", "-", "--base-dir", root, "--yes")
	require.NoError(t, res.err, res.stderr)

	jdMD, err := os.ReadFile(filepath.Join(parseResult(t, res.stdout).Path, types.JDFile))
	require.NoError(t, err)
	assert.Contains(t, string(jdMD), "Paste of the description")
}

func TestSaveCommand_Verbose(t *testing.T) {
	isolateSettings(t)

	res := runCLI(t, "", "save", "--company", "Acme", "--url", "https://acme.com/jobs/1", "--base-dir", t.TempDir(), "--yes", "--verbose")
	require.NoError(t, res.err, res.stderr)

	assert.Contains(t, res.stderr, "SNAPSHOT")
	assert.Contains(t, res.stderr, "FOLDER LABELS")
	assert.Contains(t, res.stderr, "SAVE RESULT")

	// printed labels match the saved folder
	result := parseResult(t, res.stdout)
	role := strings.TrimPrefix(result.DirName, today()+"__Acme__")
	assert.Contains(t, res.stderr, role)
}
