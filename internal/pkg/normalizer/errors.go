package normalizer

import (
	"fmt"

	"github.com/roeev/docuchat/internal/entity"
)

func unsupportedError(extension string) error {
	return fmt.Errorf("%w: %s", entity.ErrUnsupportedFileType, extension)
}

func processingError(cause error) error {
	return fmt.Errorf("%w: %v", entity.ErrFileProcessing, cause)
}
