package util

import (
	"strings"
	"testing"
	"time"

	"github.com/fadilmartias/resume-analyzer/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "fenced with prose",
			in:   "Here you go:\n```json\n{\"name\":\"A B\",\"email\":\"a@b.com\"}\n```",
			want: `{"name":"A B","email":"a@b.com"}`,
		},
		{
			name: "bare object with trailing prose",
			in:   `{"name":"A B"} hope this helps {"x":1}`,
			want: `{"name":"A B"} hope this helps {"x":1}`,
		},
		{
			name: "nested braces kept",
			in:   "```json\n{\"skills\":{\"go\":[\"gin\"]}}\n```\n",
			want: `{"skills":{"go":["gin"]}}`,
		},
		{
			name: "no object passes through",
			in:   "Sorry, I cannot help.",
			want: "Sorry, I cannot help.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSONResponse(tt.in))
		})
	}
}

func TestDecodeResumeFields_EmbeddedObject(t *testing.T) {
	raw := "Here you go:\n```json\n{\"name\":\"A B\",\"email\":\"a@b.com\"}\n```"

	fields, ok := DecodeResumeFields(CleanJSONResponse(raw))

	require.True(t, ok)
	assert.Equal(t, "A B", *fields.Name)
	assert.Equal(t, "a@b.com", *fields.Email)
	for _, k := range dto.FieldNames {
		if k == dto.FieldName || k == dto.FieldEmail {
			continue
		}
		assert.Nil(t, fields.Get(k), k)
	}
}

func TestDecodeResumeFields_StructuredValuesBecomeCompactJSON(t *testing.T) {
	payload := `{
  "name": "Renish P",
  "phone": 9687400141,
  "education": [ { "institution": "GEC Rajkot", "gpa": "7.53" } ],
  "skills": { "languages": ["Go", "Python"] },
  "experience": [],
  "certifications": {},
  "projects": null,
  "additional_info": "Eager to learn."
}`

	fields, ok := DecodeResumeFields(payload)

	require.True(t, ok)
	assert.Equal(t, `[{"institution":"GEC Rajkot","gpa":"7.53"}]`, *fields.Education)
	assert.Equal(t, `{"languages":["Go","Python"]}`, *fields.Skills)
	assert.Equal(t, "9687400141", *fields.Phone)
	assert.Nil(t, fields.Experience)
	assert.Nil(t, fields.Certifications)
	assert.Nil(t, fields.Projects)
	assert.Equal(t, "Eager to learn.", *fields.AdditionalInfo)
}

func TestDecodeResumeFields_RejectsNonObjects(t *testing.T) {
	for _, in := range []string{"name: John Smith, email john@x.com not json", `["a"]`, `{"name": }`, ""} {
		_, ok := DecodeResumeFields(in)
		assert.False(t, ok, in)
	}
}

func TestExtractBasicInfoFallback_MalformedJSON(t *testing.T) {
	fields := ExtractBasicInfoFallback("name: John Smith, email john@x.com not json")

	require.NotNil(t, fields.Email)
	assert.Equal(t, "john@x.com", *fields.Email)
	assert.Nil(t, fields.Name)
	assert.Nil(t, fields.Phone)
}

func TestExtractBasicInfoFallback_NameFromEarlyLines(t *testing.T) {
	text := "RESUME\nJane Q Public\njane@example.com | 555.123.4567\nSkills"

	fields := ExtractBasicInfoFallback(text)

	assert.Equal(t, "Jane Q Public", *fields.Name)
	assert.Equal(t, "jane@example.com", *fields.Email)
	assert.Equal(t, "555.123.4567", *fields.Phone)
}

func TestExtractBasicInfoFallback_NameCountsCharacters(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"cyrillic", "Александр Сергеевич Пушкин\nemail a@b.co", "Александр Сергеевич Пушкин"},
		{"accented", "José María Fernández\nSkills", "José María Fernández"},
		{"cjk with space", "王 小明\nSkills", "王 小明"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := ExtractBasicInfoFallback(tt.in)

			require.NotNil(t, fields.Name)
			assert.Equal(t, tt.want, *fields.Name)
		})
	}
}

func TestExtractBasicInfoFallback_NameLengthBounds(t *testing.T) {
	assert.Nil(t, ExtractBasicInfoFallback("Й Я").Name)
	assert.Nil(t, ExtractBasicInfoFallback(strings.Repeat("Я", 25)+" "+strings.Repeat("Я", 24)).Name)
	assert.NotNil(t, ExtractBasicInfoFallback(strings.Repeat("Я", 24)+" "+strings.Repeat("Я", 24)).Name)
	assert.Nil(t, ExtractBasicInfoFallback("Jane Doe ٣").Name)
}

func TestExtractBasicInfoFallback_NameOnlyInFirstFiveLines(t *testing.T) {
	text := "a\nb\nc\nd\ne\nJohn Smith"

	fields := ExtractBasicInfoFallback(text)

	assert.Nil(t, fields.Name)
}

func TestExtractBasicInfoFallback_PhonePatternOrder(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"call +1 (555) 123-4567 today", "+1 (555) 123-4567"},
		{"(555)123-4567", "(555)123-4567"},
		{"tel +915551234567", "+915551234567"},
		{"5551234567", "5551234567"},
		{"555-123-4567", "555-123-4567"},
		{"+44 555 123 4567", "+44 555 123 4567"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			fields := ExtractBasicInfoFallback(tt.in)
			require.NotNil(t, fields.Phone)
			assert.Equal(t, tt.want, *fields.Phone)
		})
	}
}

func TestExtractBasicInfoFallback_NothingFound(t *testing.T) {
	fields := ExtractBasicInfoFallback("!!!")
	assert.True(t, fields.IsEmpty())
}

func TestIsValidEmail(t *testing.T) {
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("a@b@c.com"))
	assert.False(t, IsValidEmail("jane@example.c"))
	assert.False(t, IsValidEmail(" jane@example.co"))
	assert.True(t, IsValidEmail("jane.doe@example.co"))
}

func TestIsValidPhone(t *testing.T) {
	assert.False(t, IsValidPhone("12345"))
	assert.True(t, IsValidPhone("+1 (555) 123-4567"))
	assert.True(t, IsValidPhone("555-123-4567"))
}

func TestValidateFields(t *testing.T) {
	now := time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)
	in := dto.ParsedFields{
		Email:     strp("  not-an-email "),
		Phone:     strp("12345"),
		Skills:    strp("  Go, SQL  "),
		Languages: strp("   "),
	}

	out := ValidateFields(in, now)

	assert.Nil(t, out.Email)
	assert.Nil(t, out.Phone)
	assert.Nil(t, out.Languages)
	assert.Equal(t, "Go, SQL", *out.Skills)
	require.NotNil(t, out.Name)
	assert.True(t, strings.HasPrefix(*out.Name, "Unknown Candidate "))
	assert.Contains(t, *out.Name, "20261019T083000")
}

func TestValidateFields_KeepsValidValues(t *testing.T) {
	in := dto.ParsedFields{
		Name:  strp(" Jane Doe "),
		Email: strp("jane.doe@example.co"),
		Phone: strp("+1 (555) 123-4567"),
	}

	out := ValidateFields(in, time.Now())

	assert.Equal(t, "Jane Doe", *out.Name)
	assert.Equal(t, "jane.doe@example.co", *out.Email)
	assert.Equal(t, "+1 (555) 123-4567", *out.Phone)
}
