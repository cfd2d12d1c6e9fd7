package extractor

import (
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDir sync.Once

// PDFCPUValidator runs pdfcpu's relaxed validation and page count.
type PDFCPUValidator struct {
	conf *model.Configuration
}

func NewPDFCPUValidator() *PDFCPUValidator {
	disableConfigDir.Do(api.DisableConfigDir)
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFCPUValidator{conf: conf}
}

func (v *PDFCPUValidator) Validate(path string) (int, error) {
	if err := api.ValidateFile(path, v.conf); err != nil {
		return 0, err
	}
	return api.PageCountFile(path)
}
