package extractor

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

// LedongthucTextSource reads embedded text layers with ledongthuc/pdf.
type LedongthucTextSource struct{}

func (LedongthucTextSource) Open(path string) (TextDocument, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	return &ledongthucDocument{file: f, reader: r}, nil
}

type ledongthucDocument struct {
	file   *os.File
	reader *pdf.Reader
	fonts  map[string]*pdf.Font
}

func (d *ledongthucDocument) NumPage() int {
	return d.reader.NumPage()
}

func (d *ledongthucDocument) PageText(n int) (string, error) {
	page := d.reader.Page(n + 1)
	if page.V.IsNull() {
		return "", fmt.Errorf("page %d: missing page object", n+1)
	}
	if d.fonts == nil {
		d.fonts = make(map[string]*pdf.Font)
	}
	for _, name := range page.Fonts() {
		if _, ok := d.fonts[name]; !ok {
			f := page.Font(name)
			d.fonts[name] = &f
		}
	}
	text, err := page.GetPlainText(d.fonts)
	if err != nil {
		return "", fmt.Errorf("page %d: %w", n+1, err)
	}
	return text, nil
}

func (d *ledongthucDocument) Close() error {
	return d.file.Close()
}
