package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/internal/store"
	"github.com/MKhiriev/go-recipe-box/internal/validators"
	"github.com/MKhiriev/go-recipe-box/models"
)

// attributeService implements AttributeService for a single attribute kind.
// Tags and ingredients get one instance each.
type attributeService struct {
	kind       models.AttributeKind
	repository store.AttributeRepository
	validator  validators.Validator

	logger *logger.Logger
}

func NewAttributeService(kind models.AttributeKind, repository store.AttributeRepository, logger *logger.Logger) AttributeService {
	return &attributeService{
		kind:       kind,
		repository: repository,
		validator:  validators.NewAttributeValidator(),
		logger:     logger,
	}
}

func (s *attributeService) Kind() models.AttributeKind {
	return s.kind
}

// ListAttributes returns the caller's attributes ordered by name descending.
// With assignedOnly only those used by at least one of the caller's recipes
// are returned.
func (s *attributeService) ListAttributes(ctx context.Context, userID int64, assignedOnly bool) ([]models.Attribute, error) {
	if err := requireCaller(userID); err != nil {
		return nil, err
	}

	attributes, err := s.repository.ListAttributes(ctx, s.kind, models.AttributeFilter{
		UserID:       userID,
		AssignedOnly: assignedOnly,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*attributeService.ListAttributes").
			Str("kind", string(s.kind)).
			Msg("error listing attributes")
		return nil, fmt.Errorf("error listing %ss: %w", s.kind, err)
	}

	return attributes, nil
}

// CreateAttribute stores a new attribute owned by the caller. Surrounding
// whitespace of name is dropped.
func (s *attributeService) CreateAttribute(ctx context.Context, userID int64, name string) (models.Attribute, error) {
	if err := requireCaller(userID); err != nil {
		return models.Attribute{}, err
	}

	attribute := models.Attribute{Name: strings.TrimSpace(name), UserID: userID}
	if err := s.validator.Validate(ctx, attribute); err != nil {
		return models.Attribute{}, err
	}

	created, err := s.repository.CreateAttribute(ctx, s.kind, attribute)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*attributeService.CreateAttribute").
			Str("kind", string(s.kind)).
			Msg("error creating attribute")
		return models.Attribute{}, fmt.Errorf("error creating %s: %w", s.kind, err)
	}

	return created, nil
}
