package attachment

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeTestPNG(t *testing.T, dir, name string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestPreviewGeneratesJPEGFromImage(t *testing.T) {
	attachmentDir := t.TempDir()
	previewDir := t.TempDir()
	writeTestPNG(t, attachmentDir, "site_photo.png")

	p := NewPreviewer(attachmentDir, previewDir, zap.NewNop())

	path, err := p.Preview("site_photo.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(previewDir, "site_photo_preview.jpg"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPreviewIsCached(t *testing.T) {
	attachmentDir := t.TempDir()
	previewDir := t.TempDir()
	writeTestPNG(t, attachmentDir, "site_photo.png")

	p := NewPreviewer(attachmentDir, previewDir, zap.NewNop())

	first, err := p.Preview("site_photo.png")
	require.NoError(t, err)

	firstInfo, err := os.Stat(first)
	require.NoError(t, err)

	second, err := p.Preview("site_photo.png")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	secondInfo, err := os.Stat(second)
	require.NoError(t, err)
	assert.Equal(t, firstInfo.ModTime(), secondInfo.ModTime())
}

func TestPreviewRejectsBadInput(t *testing.T) {
	p := NewPreviewer(t.TempDir(), t.TempDir(), zap.NewNop())

	_, err := p.Preview("")
	assert.Error(t, err)

	_, err = p.Preview("../escape.png")
	assert.Error(t, err)

	_, err = p.Preview("missing.png")
	assert.Error(t, err)

	_, err = p.Preview("notes.txt")
	assert.Error(t, err)
}
