package storage

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seraphina/pkg/utils"
)

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, "/", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["file"][0]
}

func TestLocalFileStore_Save(t *testing.T) {
	store, err := NewLocalFileStore(t.TempDir(), 1024)
	require.NoError(t, err)

	name, err := store.Save(fileHeader(t, "Aadhar.PNG", []byte("png-bytes")), KindImage)
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(name))

	stored, err := os.ReadFile(filepath.Join(store.Root(), name))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), stored)
}

func TestLocalFileStore_RejectsDisallowedType(t *testing.T) {
	store, err := NewLocalFileStore(t.TempDir(), 1024)
	require.NoError(t, err)

	_, err = store.Save(fileHeader(t, "script.exe", []byte("x")), KindDocument)
	assert.ErrorIs(t, err, utils.ErrInvalidUpload)

	_, err = store.Save(fileHeader(t, "statement.pdf", []byte("x")), KindImage)
	assert.ErrorIs(t, err, utils.ErrInvalidUpload)

	_, err = store.Save(fileHeader(t, "statement.pdf", []byte("x")), KindDocument)
	assert.NoError(t, err)
}

func TestLocalFileStore_RejectsOversizedFile(t *testing.T) {
	store, err := NewLocalFileStore(t.TempDir(), 4)
	require.NoError(t, err)

	_, err = store.Save(fileHeader(t, "pan.jpg", []byte("too large")), KindImage)
	assert.ErrorIs(t, err, utils.ErrUploadTooLarge)
}

func TestLocalFileStore_FailedWriteLeavesNoFile(t *testing.T) {
	store, err := NewLocalFileStore(t.TempDir(), 1024)
	require.NoError(t, err)

	broken := io.MultiReader(bytes.NewReader([]byte("partial")), iotest.ErrReader(errors.New("connection reset")))
	err = store.write("half.png", broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")

	_, statErr := os.Stat(filepath.Join(store.Root(), "half.png"))
	assert.True(t, os.IsNotExist(statErr))

	entries, err := os.ReadDir(store.Root())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
