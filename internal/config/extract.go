package config

import "sync"

type ExtractConfig struct {
	// MaxFileSize is advisory: larger files are logged, never rejected.
	MaxFileSize   int64
	OCRLanguage   string
	OCRDPI        float64
	TesseractPath string
}

var (
	extractConfig *ExtractConfig
	extractOnce   sync.Once
)

func LoadExtractConfig() *ExtractConfig {
	extractOnce.Do(func() {
		extractConfig = &ExtractConfig{
			MaxFileSize:   getEnvInt64("EXTRACT_MAX_FILE_SIZE", 50*1024*1024),
			OCRLanguage:   getEnv("OCR_LANGUAGE", "eng"),
			OCRDPI:        float64(getEnvInt("OCR_DPI", 300)),
			TesseractPath: getEnv("TESSERACT_PATH", "tesseract"),
		}
	})
	return extractConfig
}
