package chat

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/roeev/docuchat/internal/entity"
	"go.uber.org/zap"
)

// decodeAskRequest parses the multipart form shared by both ask
// endpoints: question, optional file, optional generation parameters.
// On failure it writes the error response and returns ok=false.
func (h *Handler) decodeAskRequest(ctx context.Context, w http.ResponseWriter, r *http.Request) (*entity.AskRequest, bool) {
	if err := r.ParseMultipartForm(h.cfg.MaxUploadSize); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "Invalid form data or size too large", err)
		return nil, false
	}

	question := r.FormValue("question")
	if err := h.validator.ValidateQuestion(question); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "Invalid request", err)
		return nil, false
	}

	params, err := h.validator.ParseGenerationParams(
		r.FormValue("temperature"),
		r.FormValue("maxTokens"),
		r.FormValue("topP"),
	)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "Invalid request", err)
		return nil, false
	}

	upload, err := h.saveUpload(ctx, r)
	if err != nil {
		if errors.Is(err, entity.ErrFileTooLarge) {
			h.respondError(ctx, w, http.StatusBadRequest, "Invalid request", err)
		} else {
			h.respondError(ctx, w, http.StatusInternalServerError, "Error saving uploaded file", err)
		}
		return nil, false
	}

	return &entity.AskRequest{
		Question: question,
		Upload:   upload,
		Params:   params,
	}, true
}

// saveUpload stores the optional uploaded file under the uploads dir
// with a generated name, preserving its declared extension. From this
// point the file is transient request state owned by the pipeline.
func (h *Handler) saveUpload(ctx context.Context, r *http.Request) (*entity.Upload, error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	if err := h.validator.ValidateUpload(header); err != nil {
		return nil, err
	}

	extension := strings.ToLower(filepath.Ext(header.Filename))

	path, size, err := h.writeUploadFile(file, extension)
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "file uploaded and saved",
		zap.String("filename", header.Filename),
		zap.String("path", path),
		zap.Int64("size", size),
	)

	return &entity.Upload{
		Path:      path,
		Filename:  header.Filename,
		Extension: extension,
		Size:      size,
	}, nil
}

func (h *Handler) writeUploadFile(src multipart.File, extension string) (string, int64, error) {
	if err := os.MkdirAll(h.cfg.Dir, 0o755); err != nil {
		return "", 0, err
	}

	path := filepath.Join(h.cfg.Dir, uuid.New().String()+extension)

	dst, err := os.Create(path)
	if err != nil {
		return "", 0, err
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(path)
		return "", 0, err
	}

	return path, size, nil
}
