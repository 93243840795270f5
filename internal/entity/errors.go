package entity

import "errors"

// Domain errors
var (
	// File errors
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileProcessing      = errors.New("error processing file")
	ErrFileTooLarge        = errors.New("file too large")

	// Inference errors
	ErrInference     = errors.New("error generating response")
	ErrEmptyResponse = errors.New("engine returned empty response")

	// Persistence errors
	ErrPersistence  = errors.New("persistence error")
	ErrChatNotFound = errors.New("chat not found")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")
)
