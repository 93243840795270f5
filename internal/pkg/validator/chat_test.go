package validator

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roeev/docuchat/internal/config"
	"github.com/roeev/docuchat/internal/entity"
)

func newTestValidator() *Validator {
	return NewValidator(config.FileUploadConfig{
		Dir:         "uploads",
		MaxFileSize: 1024,
	})
}

func TestValidateQuestion(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.ValidateQuestion("מה השעה?"))
	assert.ErrorIs(t, v.ValidateQuestion(""), entity.ErrMissingField)
	assert.ErrorIs(t, v.ValidateQuestion("   \n\t"), entity.ErrMissingField)
}

func TestValidateUpload_SizeLimit(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.ValidateUpload(&multipart.FileHeader{Filename: "ok.txt", Size: 1024}))

	err := v.ValidateUpload(&multipart.FileHeader{Filename: "big.txt", Size: 1025})
	assert.ErrorIs(t, err, entity.ErrFileTooLarge)
}

func TestParseGenerationParams_Defaults(t *testing.T) {
	v := newTestValidator()

	params, err := v.ParseGenerationParams("", "", "")

	require.NoError(t, err)
	assert.Equal(t, entity.DefaultGenerationParams(), params)
}

func TestParseGenerationParams_Overrides(t *testing.T) {
	v := newTestValidator()

	params, err := v.ParseGenerationParams("1.2", "256", "0.5")

	require.NoError(t, err)
	assert.Equal(t, 1.2, params.Temperature)
	assert.Equal(t, 256, params.MaxTokens)
	assert.Equal(t, 0.5, params.TopP)
}

func TestParseGenerationParams_Rejections(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name        string
		temperature string
		maxTokens   string
		topP        string
	}{
		{"temperature not a number", "hot", "", ""},
		{"temperature below range", "-0.1", "", ""},
		{"temperature above range", "2.5", "", ""},
		{"maxTokens not a number", "", "many", ""},
		{"maxTokens zero", "", "0", ""},
		{"maxTokens above range", "", "5000", ""},
		{"topP not a number", "", "", "high"},
		{"topP zero", "", "", "0"},
		{"topP above range", "", "", "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.ParseGenerationParams(tt.temperature, tt.maxTokens, tt.topP)
			assert.ErrorIs(t, err, entity.ErrInvalidParameter)
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "my_report_v2.pdf", SanitizeFilename("my report (v2).pdf"))
	assert.Equal(t, "notes.txt", SanitizeFilename("../../etc/notes.txt"))
}
