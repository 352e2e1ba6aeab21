// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
)

// validate checks that the merged [StructuredConfig] can start the server.
// All violations are reported at once.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver))
	}
	if cfg.Storage.DB.DSN == "" {
		errs = append(errs, fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs))
	}

	switch cfg.Storage.Images.Backend {
	case ImagesBackendLocal:
		if cfg.Storage.Images.Dir == "" {
			errs = append(errs, fmt.Errorf("%w: images dir is required for the local backend", ErrInvalidStorageConfigs))
		}
	case ImagesBackendS3:
		if cfg.Storage.Images.S3.Bucket == "" || cfg.Storage.Images.S3.Region == "" {
			errs = append(errs, fmt.Errorf("%w: s3 bucket and region are required", ErrInvalidStorageConfigs))
		}
	default:
		errs = append(errs, fmt.Errorf("%w: unknown images backend %q", ErrInvalidStorageConfigs, cfg.Storage.Images.Backend))
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" {
		errs = append(errs, fmt.Errorf("%w: token sign key and issuer are required", ErrInvalidAppConfigs))
	}
	if cfg.App.MaxUploadSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: max upload size must be positive", ErrInvalidAppConfigs))
	}
	if cfg.App.TokenDuration < 0 {
		errs = append(errs, fmt.Errorf("%w: token duration must not be negative", ErrInvalidAppConfigs))
	}

	if cfg.Server.HTTPAddress == "" {
		errs = append(errs, fmt.Errorf("%w: listen address is required", ErrInvalidServerConfigs))
	}

	return errors.Join(errs...)
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
