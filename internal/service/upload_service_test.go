package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"zephyr/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadService_Store(t *testing.T) {
	root := t.TempDir()
	svc, err := NewUploadService(root)
	require.NoError(t, err)
	ctx := context.Background()

	tests := []struct {
		name     string
		content  []byte
		filename string
		kind     string
		msg      string
	}{
		{"No filename", []byte("x"), "", UploadKindPost, "No file provided"},
		{"No content", nil, "a.png", UploadKindPost, "No file provided"},
		{"Bad extension", []byte("x"), "a.exe", UploadKindPost, "File type not allowed"},
		{"Too large", make([]byte, MaxUploadSize+1), "a.png", UploadKindPost, "File too large"},
		{"Bad kind", []byte("x"), "a.png", "banner", "Invalid upload type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Store(ctx, tt.content, tt.filename, tt.kind)
			assertCode(t, err, models.CodeValidation)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}

	name, err := svc.Store(ctx, []byte("img"), "Holiday.JPG", UploadKindProfile)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".jpg"))
	assert.Len(t, strings.TrimSuffix(name, ".jpg"), 36)

	data, err := os.ReadFile(filepath.Join(root, "profile_pictures", name))
	require.NoError(t, err)
	assert.Equal(t, "img", string(data))
	assert.Equal(t, "/uploads/profile_pictures/"+name, svc.URL(name, UploadKindProfile))

	exact, err := svc.Store(ctx, make([]byte, MaxUploadSize), "big.webp", UploadKindPost)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/post_images/"+exact, svc.URL(exact, UploadKindPost))
}

func TestUploadService_Delete(t *testing.T) {
	svc, err := NewUploadService(t.TempDir())
	require.NoError(t, err)

	name, err := svc.Store(context.Background(), []byte("img"), "a.png", UploadKindPost)
	require.NoError(t, err)

	ok, err := svc.Delete(name, UploadKindProfile)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Delete("../post_images/"+name, UploadKindProfile)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Delete(name, "banner")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Delete(name, UploadKindPost)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Delete(name, UploadKindPost)
	require.NoError(t, err)
	assert.False(t, ok)
}
