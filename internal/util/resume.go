package util

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/fadilmartias/resume-analyzer/internal/dto"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

var (
	jsonFenceOpen  = regexp.MustCompile("```json\\s*")
	jsonFenceClose = regexp.MustCompile("```\\s*$")
	jsonObjectSpan = regexp.MustCompile(`(?s)\{.*\}`)

	fallbackEmail = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	// Tried in order; first match wins.
	fallbackPhones = []*regexp.Regexp{
		regexp.MustCompile(`(?:\+\d{1,3}[-.\s]?)?\(\d{3}\)[-.\s]?\d{3}[-.\s]?\d{4}`),
		regexp.MustCompile(`(?:\+\d{1,3}[-.\s]?)?\d{10}`),
		regexp.MustCompile(`(?:\+\d{1,3}[-.\s]?)?\d{3}[-.\s]\d{3}[-.\s]\d{4}`),
	}

	strictEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	nonDigit    = regexp.MustCompile(`\D`)
)

// CleanJSONResponse strips markdown fences and returns the span from the
// first '{' to the last '}'. Text without such a span is returned as is.
func CleanJSONResponse(response string) string {
	cleaned := jsonFenceOpen.ReplaceAllString(response, "")
	cleaned = jsonFenceClose.ReplaceAllString(cleaned, "")
	if m := jsonObjectSpan.FindString(cleaned); m != "" {
		return m
	}
	return response
}

// DecodeResumeFields reads the resume keys from a JSON object. ok is false
// when the input is not a JSON object.
//
// Structured values (arrays, objects) are stored as compact JSON text; empty
// ones count as not provided.
func DecodeResumeFields(payload string) (fields dto.ParsedFields, ok bool) {
	if !gjson.Valid(payload) {
		return fields, false
	}
	obj := gjson.Parse(payload)
	if !obj.IsObject() {
		return fields, false
	}
	for _, key := range dto.FieldNames {
		fields.Set(key, fieldValue(obj.Get(key)))
	}
	return fields, true
}

func fieldValue(r gjson.Result) *string {
	var s string
	switch r.Type {
	case gjson.Null:
		return nil
	case gjson.String:
		s = r.Str
	case gjson.JSON:
		s = string(pretty.Ugly([]byte(r.Raw)))
		if s == "[]" || s == "{}" {
			return nil
		}
	default:
		s = r.Raw
	}
	return &s
}

// ExtractBasicInfoFallback recovers email, phone and a name guess from text
// that did not decode as JSON. It never fails; nothing found means an empty
// field set.
func ExtractBasicInfoFallback(text string) dto.ParsedFields {
	var fields dto.ParsedFields

	if m := fallbackEmail.FindString(text); m != "" {
		fields.Email = &m
	}

	for _, re := range fallbackPhones {
		if m := re.FindString(text); m != "" {
			fields.Phone = &m
			break
		}
	}

	lines := strings.Split(text, "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if looksLikeName(line) {
			fields.Name = &line
			break
		}
	}

	return fields
}

func looksLikeName(line string) bool {
	if n := utf8.RuneCountInString(line); n <= 3 || n >= 50 {
		return false
	}
	if !strings.Contains(line, " ") || strings.Contains(line, "@") {
		return false
	}
	return strings.IndexFunc(line, unicode.IsDigit) < 0
}

func IsValidEmail(email string) bool {
	return strictEmail.MatchString(email)
}

// IsValidPhone accepts anything with at least ten digits.
func IsValidPhone(phone string) bool {
	return len(nonDigit.ReplaceAllString(phone, "")) >= 10
}

// TrimFields trims every value; blank values become not provided.
func TrimFields(in dto.ParsedFields) dto.ParsedFields {
	var out dto.ParsedFields
	for _, key := range dto.FieldNames {
		v := in.Get(key)
		if v == nil {
			continue
		}
		trimmed := strings.TrimSpace(*v)
		if trimmed == "" {
			continue
		}
		out.Set(key, &trimmed)
	}
	return out
}

// ValidateFields trims the fields, drops an invalid email or phone and
// fills in a placeholder name stamped with now.
func ValidateFields(in dto.ParsedFields, now time.Time) dto.ParsedFields {
	out := TrimFields(in)
	if out.Email != nil && !IsValidEmail(*out.Email) {
		out.Email = nil
	}
	if out.Phone != nil && !IsValidPhone(*out.Phone) {
		out.Phone = nil
	}
	if out.Name == nil {
		name := PlaceholderName(now)
		out.Name = &name
	}
	return out
}

func PlaceholderName(now time.Time) string {
	return fmt.Sprintf("Unknown Candidate %s", now.UTC().Format("20060102T150405.000Z"))
}
