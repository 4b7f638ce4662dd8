package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/yatube-lab/backend/config"
)

// localStorage keeps uploaded objects on the local disk. The files are served
// back under URLPrefix by the media handler.
type localStorage struct {
	cfg config.LocalStorageConfigs
}

func NewLocalStorage(cfg config.LocalStorageConfigs) *localStorage {
	return &localStorage{cfg: cfg}
}

func (s *localStorage) Upload(ctx context.Context, object *UploadObject) (*UploadResponse, error) {
	fileName := path.Join(object.Prefix, fmt.Sprintf("%s-%s", uuid.NewString(), object.FileName))
	fullPath := filepath.Join(s.cfg.Root, filepath.FromSlash(fileName))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return nil, err
	}

	if err := os.WriteFile(fullPath, object.Data, 0o644); err != nil {
		return nil, fmt.Errorf("upload failed: %w, path %s", err, fullPath)
	}

	return &UploadResponse{
		Url:      path.Join(s.cfg.URLPrefix, fileName),
		FileName: fileName,
	}, nil
}

// Root is the directory the media handler serves.
func (s *localStorage) Root() string {
	return s.cfg.Root
}
