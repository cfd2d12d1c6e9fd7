package extractor

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br/>`)
	docxTab          = regexp.MustCompile(`<w:tab/>`)
	docxTag          = regexp.MustCompile(`<[^>]+>`)
	blankRuns        = regexp.MustCompile(`\n{3,}`)
)

// ReadDocx returns the plain text of a .docx body.
func ReadDocx(path string) (string, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer r.Close()

	return docxXMLToText(r.Editable().GetContent()), nil
}

func docxXMLToText(content string) string {
	text := docxParagraphEnd.ReplaceAllString(content, "\n")
	text = docxTab.ReplaceAllString(text, "\t")
	text = docxTag.ReplaceAllString(text, "")
	text = html.UnescapeString(text)
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
