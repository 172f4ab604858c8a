package services

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resume"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["resume"][0]
}

func TestStorageSaveAndDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	storage := NewStorageService(dir)
	require.NoError(t, storage.EnsureUploadDir())

	header := newFileHeader(t, "../../etc/My Resume.TXT", MediaTypeText, []byte("Experienced backend engineer"))

	doc, err := storage.SaveFile(header, MediaTypeText)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(doc.Filename, "resume_"))
	assert.True(t, strings.HasSuffix(doc.Filename, ".txt"))
	assert.Equal(t, filepath.Join(dir, doc.Filename), doc.FilePath)
	assert.Equal(t, MediaTypeText, doc.MediaType)
	assert.Equal(t, int64(len("Experienced backend engineer")), doc.Size)

	data, err := os.ReadFile(doc.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "Experienced backend engineer", string(data))

	require.NoError(t, storage.DeleteFile(doc.Filename))
	_, err = os.Stat(doc.FilePath)
	assert.True(t, os.IsNotExist(err))

	// already gone
	require.NoError(t, storage.DeleteFile(doc.Filename))
}

func TestStorageUniqueNames(t *testing.T) {
	storage := NewStorageService(t.TempDir())
	header := newFileHeader(t, "resume.pdf", MediaTypePDF, []byte("%PDF-1.4"))

	first, err := storage.SaveFile(header, MediaTypePDF)
	require.NoError(t, err)
	second, err := storage.SaveFile(header, MediaTypePDF)
	require.NoError(t, err)

	assert.NotEqual(t, first.Filename, second.Filename)
}

func TestStorageSaveFailsWithoutDir(t *testing.T) {
	storage := NewStorageService(filepath.Join(t.TempDir(), "missing"))
	header := newFileHeader(t, "resume.txt", MediaTypeText, []byte("text"))

	_, err := storage.SaveFile(header, MediaTypeText)

	require.Error(t, err)
}
