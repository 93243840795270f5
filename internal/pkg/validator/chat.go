package validator

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/roeev/docuchat/internal/config"
	"github.com/roeev/docuchat/internal/entity"
)

// Generation parameter bounds. The engine accepts wider ranges but
// values outside these produce degenerate sampling, so they are
// rejected at the API boundary instead of being passed through raw.
const (
	MinTemperature = 0.0
	MaxTemperature = 2.0
	MinMaxTokens   = 1
	MaxMaxTokens   = 4096
	MaxTopP        = 1.0
)

// Validator validates ask requests and file uploads
type Validator struct {
	cfg config.FileUploadConfig
}

func NewValidator(cfg config.FileUploadConfig) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateQuestion checks the required question field.
func (v *Validator) ValidateQuestion(question string) error {
	if strings.TrimSpace(question) == "" {
		return fmt.Errorf("%w: question", entity.ErrMissingField)
	}
	return nil
}

// ValidateUpload checks the size of a single uploaded file. Extension
// dispatch stays with the normalizer so unknown types keep the
// processing-error contract.
func (v *Validator) ValidateUpload(fh *multipart.FileHeader) error {
	if fh.Size > v.cfg.MaxFileSize {
		return fmt.Errorf("%w: file '%s' is %d bytes (max %d)",
			entity.ErrFileTooLarge, fh.Filename, fh.Size, v.cfg.MaxFileSize)
	}
	return nil
}

// ParseGenerationParams parses the optional form fields into a
// bounds-checked params struct; absent fields take the defaults.
func (v *Validator) ParseGenerationParams(temperature, maxTokens, topP string) (entity.GenerationParams, error) {
	params := entity.DefaultGenerationParams()

	if temperature != "" {
		value, err := strconv.ParseFloat(temperature, 64)
		if err != nil {
			return params, fmt.Errorf("%w: temperature: %v", entity.ErrInvalidParameter, err)
		}
		if value < MinTemperature || value > MaxTemperature {
			return params, fmt.Errorf("%w: temperature must be between %g and %g, got %g",
				entity.ErrInvalidParameter, MinTemperature, MaxTemperature, value)
		}
		params.Temperature = value
	}

	if maxTokens != "" {
		value, err := strconv.Atoi(maxTokens)
		if err != nil {
			return params, fmt.Errorf("%w: maxTokens: %v", entity.ErrInvalidParameter, err)
		}
		if value < MinMaxTokens || value > MaxMaxTokens {
			return params, fmt.Errorf("%w: maxTokens must be between %d and %d, got %d",
				entity.ErrInvalidParameter, MinMaxTokens, MaxMaxTokens, value)
		}
		params.MaxTokens = value
	}

	if topP != "" {
		value, err := strconv.ParseFloat(topP, 64)
		if err != nil {
			return params, fmt.Errorf("%w: topP: %v", entity.ErrInvalidParameter, err)
		}
		if value <= 0 || value > MaxTopP {
			return params, fmt.Errorf("%w: topP must be in (0, %g], got %g",
				entity.ErrInvalidParameter, MaxTopP, value)
		}
		params.TopP = value
	}

	return params, nil
}

// SanitizeFilename sanitizes a filename for safe storage
func SanitizeFilename(filename string) string {
	filename = filepath.Base(filename)
	replacer := strings.NewReplacer(
		" ", "_",
		"(", "",
		")", "",
		"[", "",
		"]", "",
		"{", "",
		"}", "",
	)
	return replacer.Replace(filename)
}
