package extractor

import (
	"strings"

	"github.com/fadilmartias/resume-analyzer/internal/apperror"
)

type Method string

const (
	MethodDirect Method = "DIRECT"
	MethodOCR    Method = "OCR"
	// MethodMixed marks OCR output for a document whose text layer held
	// only whitespace.
	MethodMixed Method = "MIXED"
)

// PageResult is the outcome of one page (or page image) in a stage.
// Page is 1-based.
type PageResult struct {
	Page int
	Text string
	Err  error
}

// Document is the transient result of one extraction. It is created per
// upload and never shared.
type Document struct {
	SourcePath  string
	PageTexts   []string
	Method      Method
	PageCount   int
	Diagnostics []error
}

// Text joins the non-empty pages in source order and trims the result.
func (d *Document) Text() string {
	var b strings.Builder
	for _, t := range d.PageTexts {
		if t == "" {
			continue
		}
		b.WriteString(t)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func (d *Document) IsEmpty() bool {
	return d.Text() == ""
}

// Err returns an extraction-exhausted error when neither stage produced
// text, nil otherwise.
func (d *Document) Err() error {
	if !d.IsEmpty() {
		return nil
	}
	return apperror.New(apperror.KindExtractionExhausted, "Failed to extract text from PDF", nil)
}

func (d *Document) degrade(stage string, err error) {
	d.Diagnostics = append(d.Diagnostics, apperror.New(apperror.KindExtractionDegraded, stage, err))
}

// foldPages turns per-page results into ordered page texts. Failed pages
// keep their slot as an empty string and contribute a diagnostic.
func foldPages(stage string, results []PageResult) (texts []string, diagnostics []error) {
	texts = make([]string, len(results))
	for i, r := range results {
		if r.Err != nil {
			diagnostics = append(diagnostics, apperror.New(apperror.KindExtractionDegraded, stage, r.Err))
			continue
		}
		texts[i] = r.Text
	}
	return texts, diagnostics
}

func joinedBlank(texts []string) bool {
	for _, t := range texts {
		if strings.TrimSpace(t) != "" {
			return false
		}
	}
	return true
}

func anyRaw(texts []string) bool {
	for _, t := range texts {
		if t != "" {
			return true
		}
	}
	return false
}
