package utils

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveUploadedFile(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("profileImage", "pic.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	file, header, err := req.FormFile("profileImage")
	require.NoError(t, err)
	defer file.Close()

	dir := t.TempDir()
	path, err := SaveUploadedFile(file, header, dir)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(path, dir))
	require.True(t, strings.HasSuffix(path, ".jpg"))
	require.NotContains(t, path, "pic.jpg")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "jpeg-bytes", string(data))
}
