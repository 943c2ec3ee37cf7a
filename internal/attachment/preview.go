package attachment

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

// Previewer produces browser-friendly JPEG previews of report photo
// attachments. Field apps upload photos either as image files or as
// scanner-produced PDFs; PDFs are rasterized to their first page.
type Previewer struct {
	attachmentDir string
	previewDir    string
	logger        *zap.Logger
}

// NewPreviewer creates a new attachment previewer
func NewPreviewer(attachmentDir, previewDir string, logger *zap.Logger) *Previewer {
	return &Previewer{
		attachmentDir: attachmentDir,
		previewDir:    previewDir,
		logger:        logger,
	}
}

// Preview returns the path of a JPEG preview for the named attachment,
// generating it on first use. The file name is resolved relative to the
// attachment directory.
func (p *Previewer) Preview(fileName string) (string, error) {
	if fileName == "" {
		return "", fmt.Errorf("attachment file name cannot be empty")
	}
	if filepath.Base(fileName) != fileName {
		return "", fmt.Errorf("invalid attachment file name: %s", fileName)
	}

	sourcePath := filepath.Join(p.attachmentDir, fileName)
	if _, err := os.Stat(sourcePath); os.IsNotExist(err) {
		return "", fmt.Errorf("attachment not found: %s", fileName)
	}

	previewPath := filepath.Join(p.previewDir, previewName(fileName))
	if _, err := os.Stat(previewPath); err == nil {
		return previewPath, nil
	}

	if err := os.MkdirAll(p.previewDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create preview directory: %w", err)
	}

	img, err := p.decode(sourcePath)
	if err != nil {
		return "", err
	}

	if err := writeJPEG(previewPath, img); err != nil {
		return "", err
	}

	p.logger.Info("Attachment preview generated",
		zap.String("file_name", fileName),
		zap.String("preview_path", previewPath))

	return previewPath, nil
}

func (p *Previewer) decode(sourcePath string) (image.Image, error) {
	ext := strings.ToLower(filepath.Ext(sourcePath))

	switch ext {
	case ".pdf":
		return p.rasterizePDF(sourcePath)
	case ".jpg", ".jpeg", ".png":
		return decodeImageFile(sourcePath, ext)
	default:
		return nil, fmt.Errorf("unsupported attachment type: %s", ext)
	}
}

// rasterizePDF renders the first page of a PDF using mupdf
func (p *Previewer) rasterizePDF(pdfPath string) (image.Image, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, fmt.Errorf("PDF has no pages: %s", pdfPath)
	}

	img, err := doc.Image(0)
	if err != nil {
		return nil, fmt.Errorf("failed to render PDF page: %w", err)
	}

	return img, nil
}

func decodeImageFile(imagePath, ext string) (image.Image, error) {
	file, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	var img image.Image
	switch ext {
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(file)
	case ".png":
		img, err = png.Decode(file)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return img, nil
}

func writeJPEG(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create preview file: %w", err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: 85}); err != nil {
		return fmt.Errorf("failed to encode preview: %w", err)
	}

	return nil
}

// previewName maps an attachment file name to its preview file name
func previewName(fileName string) string {
	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	return base + "_preview.jpg"
}
