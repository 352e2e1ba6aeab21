// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-recipe-box/internal/config"
	"github.com/MKhiriev/go-recipe-box/internal/logger"
)

// Storages groups every persistence component the service layer depends on.
type Storages struct {
	UserRepository      UserRepository
	TokenRepository     TokenRepository
	AttributeRepository AttributeRepository
	RecipeRepository    RecipeRepository
	ImageStorage        ImageStorage

	db *DB
}

// NewStorages connects the database described by cfg.DB, applies migrations
// and builds the repositories together with the configured image backend.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	db, err := NewConnectDB(ctx, cfg.DB, logger)
	if err != nil {
		return nil, err
	}

	images, err := NewImageStorage(ctx, cfg.Images, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Storages{
		UserRepository:      NewUserRepository(db, logger),
		TokenRepository:     NewTokenRepository(db, logger),
		AttributeRepository: NewAttributeRepository(db, logger),
		RecipeRepository:    NewRecipeRepository(db, logger),
		ImageStorage:        images,
		db:                  db,
	}, nil
}

// NewImageStorage returns the [ImageStorage] selected by cfg.Backend.
func NewImageStorage(ctx context.Context, cfg config.Images, logger *logger.Logger) (ImageStorage, error) {
	switch cfg.Backend {
	case config.ImagesBackendLocal:
		return NewLocalImageStorage(cfg.Dir, cfg.BaseURL, logger)
	case config.ImagesBackendS3:
		return NewS3ImageStorage(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported image backend %q", cfg.Backend)
	}
}

// Close releases the database pool.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}

	return s.db.Close()
}
