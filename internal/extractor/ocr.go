package extractor

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// FitzRasterizer renders pages with MuPDF through go-fitz.
type FitzRasterizer struct {
	DPI float64
}

func (r FitzRasterizer) Open(path string) (PageImages, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return &fitzPages{doc: doc, dpi: r.DPI}, nil
}

type fitzPages struct {
	doc *fitz.Document
	dpi float64
}

func (p *fitzPages) NumPage() int {
	return p.doc.NumPage()
}

func (p *fitzPages) Image(n int) (image.Image, error) {
	var (
		img *image.RGBA
		err error
	)
	if p.dpi > 0 {
		img, err = p.doc.ImageDPI(n, p.dpi)
	} else {
		img, err = p.doc.Image(n)
	}
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (p *fitzPages) Close() error {
	return p.doc.Close()
}

// TesseractEngine shells out to the tesseract CLI, one temp PNG per page.
type TesseractEngine struct {
	Path     string
	Language string
}

func NewTesseractEngine(path, language string) *TesseractEngine {
	if path == "" {
		path = "tesseract"
	}
	if language == "" {
		language = "eng"
	}
	return &TesseractEngine{Path: path, Language: language}
}

func (t *TesseractEngine) Available() error {
	out, err := exec.Command(t.Path, "--version").CombinedOutput()
	if err != nil {
		return fmt.Errorf("tesseract not found or not executable: %w, output: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (t *TesseractEngine) Recognize(img image.Image) (string, error) {
	tmpFile, err := os.CreateTemp("", "page-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if err := png.Encode(tmpFile, img); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("failed to encode PNG: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to write PNG: %w", err)
	}

	var stderr bytes.Buffer
	cmd := exec.Command(t.Path, tmpPath, "stdout", "-l", t.Language)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("tesseract error: %w, output: %s", err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(string(out)), nil
}
