package chat

import (
	"context"
	"os"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/roeev/docuchat/internal/entity"
	"go.uber.org/zap"
)

// removeUpload deletes the transient uploaded file. Failures are logged
// only: the response has already been determined by the pipeline and a
// leftover temp file must not change it.
func (uc *ChatUsecase) removeUpload(ctx context.Context, upload *entity.Upload) {
	if err := os.Remove(upload.Path); err != nil {
		ctxzap.Warn(ctx, "failed to remove uploaded file",
			zap.String("path", upload.Path),
			zap.Error(err),
		)
		return
	}

	ctxzap.Debug(ctx, "uploaded file removed", zap.String("path", upload.Path))
}
