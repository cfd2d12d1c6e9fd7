package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", 90 * time.Second},
		{"30s", 30 * time.Second},
		{"0s", 90 * time.Second},
		{"0", 90 * time.Second},
		{"-5s", 90 * time.Second},
		{"soon", 90 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("RESUME_TEST_TIMEOUT", tt.value)
			assert.Equal(t, tt.want, getEnvDuration("RESUME_TEST_TIMEOUT", 90*time.Second))
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("RESUME_TEST_FLAG", "true")
	assert.True(t, getEnvBool("RESUME_TEST_FLAG", false))

	t.Setenv("RESUME_TEST_FLAG", "yes please")
	assert.False(t, getEnvBool("RESUME_TEST_FLAG", false))
}

func TestParseMergePolicy(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"overwrite", MergePolicyOverwrite},
		{"keep_existing", MergePolicyKeepExisting},
		{"KEEP_EXISTING", MergePolicyKeepExisting},
		{"keep-existing", MergePolicyOverwrite},
		{"merge", MergePolicyOverwrite},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, parseMergePolicy(tt.value))
		})
	}
}
