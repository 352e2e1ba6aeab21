package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-recipe-box/internal/logger"
)

// ErrInvalidImageName is returned for names that would escape the media root.
var ErrInvalidImageName = errors.New("invalid image name")

// localImageStorage keeps images as files under a media root directory.
// The HTTP layer serves that directory at baseURL.
type localImageStorage struct {
	dir     string
	baseURL string
	logger  *logger.Logger
}

// NewLocalImageStorage creates dir if needed and returns an [ImageStorage]
// writing below it.
func NewLocalImageStorage(dir, baseURL string, logger *logger.Logger) (ImageStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating media dir %s: %w", dir, err)
	}
	logger.Debug().Str("dir", dir).Msg("creating local image storage")

	return &localImageStorage{
		dir:     dir,
		baseURL: baseURL,
		logger:  logger,
	}, nil
}

func (s *localImageStorage) SaveImage(ctx context.Context, name string, data []byte, _ string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*localImageStorage.SaveImage").Msg("error creating image dir")
		return fmt.Errorf("error creating image dir: %w", err)
	}

	if err = os.WriteFile(path, data, 0o644); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*localImageStorage.SaveImage").Str("name", name).Msg("error writing image")
		return fmt.Errorf("error writing image: %w", err)
	}

	return nil
}

func (s *localImageStorage) DeleteImage(ctx context.Context, name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return ErrImageNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*localImageStorage.DeleteImage").Str("name", name).Msg("error removing image")
		return fmt.Errorf("error removing image: %w", err)
	}

	return nil
}

func (s *localImageStorage) URL(name string) string {
	return joinURL(s.baseURL, name)
}

func (s *localImageStorage) path(name string) (string, error) {
	if !filepath.IsLocal(filepath.FromSlash(name)) {
		return "", fmt.Errorf("%w: %q", ErrInvalidImageName, name)
	}

	return filepath.Join(s.dir, filepath.FromSlash(name)), nil
}

// joinURL joins a URL prefix and a slash separated object name.
func joinURL(base, name string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(name, "/")
}
