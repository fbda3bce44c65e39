package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/devmarket/internal/client/models"
)

// FileSource reads images from the local filesystem.
type FileSource struct{}

func (FileSource) Open(_ context.Context, ref string) (models.Image, error) {
	f, err := os.Open(ref)
	if err != nil {
		return models.Image{}, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return models.Image{}, fmt.Errorf("stat image: %w", err)
	}
	if info.IsDir() {
		return models.Image{}, fmt.Errorf("open image: %s is a directory", ref)
	}

	return readImage(filepath.Base(ref), "", f)
}
