package usecase

import (
	"strings"

	"github.com/fadilmartias/resume-analyzer/internal/dto"
)

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

func parsedName(name string) dto.ParsedFields {
	return dto.ParsedFields{Name: &name}
}
