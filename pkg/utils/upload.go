package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// SaveUploadedFile writes a multipart upload into dir under a generated
// name and returns the stored path.
func SaveUploadedFile(file multipart.File, header *multipart.FileHeader, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create upload dir %s: %w", dir, err)
	}

	name := GenerateUploadName(header.Filename)
	path := filepath.Join(dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file %s: %w", path, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload file %s: %w", path, err)
	}

	return path, nil
}
