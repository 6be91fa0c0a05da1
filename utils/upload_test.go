package utils

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateImageFileRejectsOversizedFile(t *testing.T) {
	file := &multipart.FileHeader{Filename: "photo.png", Size: 6 * 1024 * 1024}

	err := ValidateImageFile(file)

	require.Error(t, err)
	appErr := GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestValidateImageFileRejectsUnknownExtension(t *testing.T) {
	file := &multipart.FileHeader{Filename: "payload.exe", Size: 1024}

	err := ValidateImageFile(file)

	require.Error(t, err)
	appErr := GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestValidateImageFileAcceptsAllowedTypes(t *testing.T) {
	for _, name := range []string{"a.jpg", "b.jpeg", "c.png", "d.gif", "e.webp", "F.PNG"} {
		file := &multipart.FileHeader{Filename: name, Size: 1024}
		assert.NoError(t, ValidateImageFile(file), name)
	}
}
