// Package extractor turns uploaded resumes into plain text. PDFs are read
// through their embedded text layer first and fall back to OCR of rendered
// pages only when that layer is blank.
package extractor

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/fadilmartias/resume-analyzer/internal/apperror"
	"github.com/fadilmartias/resume-analyzer/internal/config"
	"github.com/rs/zerolog"
)

// TextSource opens a PDF as a sequence of pages with embedded text.
type TextSource interface {
	Open(path string) (TextDocument, error)
}

type TextDocument interface {
	NumPage() int
	// PageText uses a 0-based page index.
	PageText(n int) (string, error)
	Close() error
}

// Rasterizer renders PDF pages into images for OCR.
type Rasterizer interface {
	Open(path string) (PageImages, error)
}

type PageImages interface {
	NumPage() int
	Image(n int) (image.Image, error)
	Close() error
}

type OCREngine interface {
	Available() error
	Recognize(img image.Image) (string, error)
}

// Validator inspects the file structure before extraction. Its verdict is
// advisory.
type Validator interface {
	Validate(path string) (pages int, err error)
}

type Extractor struct {
	text        TextSource
	raster      Rasterizer
	ocr         OCREngine
	validator   Validator
	maxFileSize int64
	log         zerolog.Logger
}

type Option func(*Extractor)

func WithTextSource(s TextSource) Option { return func(e *Extractor) { e.text = s } }
func WithRasterizer(r Rasterizer) Option { return func(e *Extractor) { e.raster = r } }
func WithOCREngine(o OCREngine) Option { return func(e *Extractor) { e.ocr = o } }
func WithValidator(v Validator) Option { return func(e *Extractor) { e.validator = v } }
func WithMaxFileSize(n int64) Option { return func(e *Extractor) { e.maxFileSize = n } }
func WithLogger(l zerolog.Logger) Option { return func(e *Extractor) { e.log = l } }

// New builds an extractor backed by ledongthuc/pdf, go-fitz, tesseract and
// pdfcpu. Options replace individual collaborators.
func New(cfg *config.ExtractConfig, opts ...Option) *Extractor {
	e := &Extractor{
		text:        LedongthucTextSource{},
		raster:      FitzRasterizer{DPI: cfg.OCRDPI},
		ocr:         NewTesseractEngine(cfg.TesseractPath, cfg.OCRLanguage),
		validator:   NewPDFCPUValidator(),
		maxFileSize: cfg.MaxFileSize,
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractText returns the best-effort transcription of path. An empty string
// means no usable text; recoverable failures are logged, never returned.
func (e *Extractor) ExtractText(path string) string {
	doc, err := e.Extract(path)
	if err != nil {
		e.log.Error().Err(err).Str("path", path).Msg("Document rejected before extraction")
		return ""
	}
	return doc.Text()
}

// Extract runs the two-stage pipeline. The returned error is only ever an
// input error; an unreadable document comes back as an empty Document.
func (e *Extractor) Extract(path string) (*Document, error) {
	if err := e.checkInput(path); err != nil {
		return nil, err
	}

	doc := &Document{SourcePath: path}
	log := e.log.With().Str("path", path).Logger()

	if strings.EqualFold(filepath.Ext(path), ".docx") {
		e.extractDocx(doc, log)
		return doc, nil
	}

	if e.validator != nil {
		pages, err := recovered("validation", func() (int, error) { return e.validator.Validate(path) })
		if err != nil {
			doc.degrade("structural validation", err)
			log.Warn().Err(err).Msg("PDF failed structural validation, extracting anyway")
		}
		doc.PageCount = pages
	}

	direct := e.directPass(doc, log)
	if !joinedBlank(direct) {
		doc.PageTexts = direct
		doc.Method = MethodDirect
		return doc, nil
	}
	log.Info().Msg("Direct text extraction returned empty text, trying OCR fallback")

	ocr := e.ocrPass(doc, log)
	doc.PageTexts = ocr
	doc.Method = MethodOCR
	if anyRaw(direct) {
		doc.Method = MethodMixed
	}

	if doc.IsEmpty() {
		log.Error().Int("diagnostics", len(doc.Diagnostics)).Msg("No text could be extracted from PDF")
	} else {
		log.Info().Int("chars", len(doc.Text())).Msg("OCR extraction successful")
	}
	return doc, nil
}

func (e *Extractor) checkInput(path string) error {
	if strings.TrimSpace(path) == "" {
		return apperror.New(apperror.KindInput, "No file provided", nil)
	}
	info, err := os.Stat(path)
	if err != nil {
		return apperror.New(apperror.KindInput, "File does not exist", err)
	}
	if !info.Mode().IsRegular() {
		return apperror.New(apperror.KindInput, "Path is not a file", nil)
	}
	if info.Size() == 0 {
		return apperror.New(apperror.KindInput, "File is empty", nil)
	}
	if e.maxFileSize > 0 && info.Size() > e.maxFileSize {
		e.log.Warn().Str("path", path).Int64("bytes", info.Size()).Msg("PDF file is very large")
	}
	return nil
}

func (e *Extractor) directPass(doc *Document, log zerolog.Logger) []string {
	if e.text == nil {
		return nil
	}
	src, err := recovered("open", func() (TextDocument, error) { return e.text.Open(doc.SourcePath) })
	if err != nil {
		doc.degrade("direct extraction", err)
		log.Error().Err(err).Msg("Direct text extraction failed")
		return nil
	}
	defer src.Close()

	n, err := recovered("page count", func() (int, error) { return src.NumPage(), nil })
	if err != nil {
		doc.degrade("direct extraction", err)
		log.Error().Err(err).Msg("Direct text extraction failed")
		return nil
	}
	if n < 0 {
		n = 0
	}
	if doc.PageCount == 0 {
		doc.PageCount = n
	}
	results := make([]PageResult, n)
	for i := 0; i < n; i++ {
		text, err := recovered("extraction", func() (string, error) { return src.PageText(i) })
		results[i] = PageResult{Page: i + 1, Text: text, Err: err}
		if err != nil {
			log.Warn().Err(err).Int("page", i+1).Msg("Failed to extract text from page")
		}
	}

	texts, diags := foldPages("direct extraction", results)
	doc.Diagnostics = append(doc.Diagnostics, diags...)
	return texts
}

func (e *Extractor) ocrPass(doc *Document, log zerolog.Logger) []string {
	if e.ocr == nil || e.raster == nil {
		doc.degrade("ocr", fmt.Errorf("ocr not configured"))
		return nil
	}
	if err := e.ocr.Available(); err != nil {
		doc.degrade("ocr", err)
		log.Error().Err(err).Msg("OCR engine unavailable")
		return nil
	}

	pages, err := e.raster.Open(doc.SourcePath)
	if err != nil {
		doc.degrade("rasterization", err)
		log.Error().Err(err).Msg("PDF to image conversion failed")
		return nil
	}
	defer pages.Close()

	n := pages.NumPage()
	results := make([]PageResult, n)
	for i := 0; i < n; i++ {
		results[i] = e.recognizePage(pages, i)
		if results[i].Err != nil {
			log.Warn().Err(results[i].Err).Int("page", i+1).Msg("OCR failed for page")
		}
	}

	texts, diags := foldPages("ocr", results)
	doc.Diagnostics = append(doc.Diagnostics, diags...)
	return texts
}

func (e *Extractor) recognizePage(pages PageImages, i int) PageResult {
	img, err := pages.Image(i)
	if err != nil {
		return PageResult{Page: i + 1, Err: fmt.Errorf("page %d: failed to extract image: %w", i+1, err)}
	}
	text, err := recovered("ocr", func() (string, error) { return e.ocr.Recognize(img) })
	if err != nil {
		return PageResult{Page: i + 1, Err: fmt.Errorf("page %d: %w", i+1, err)}
	}
	return PageResult{Page: i + 1, Text: text}
}

func (e *Extractor) extractDocx(doc *Document, log zerolog.Logger) {
	text, err := ReadDocx(doc.SourcePath)
	doc.Method = MethodDirect
	doc.PageCount = 1
	if err != nil {
		doc.degrade("docx extraction", err)
		log.Error().Err(err).Msg("DOCX text extraction failed")
		doc.PageTexts = []string{""}
		return
	}
	doc.PageTexts = []string{text}
}

// The PDF libraries panic on some malformed inputs; isolate that per call.
func recovered[T any](what string, fn func() (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			v, err = zero, fmt.Errorf("panic during %s: %v", what, r)
		}
	}()
	return fn()
}
