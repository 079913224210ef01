package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/store"
)

// TagService manages a user's tags. Every operation is scoped to userID.
type TagService interface {
	CreateTag(ctx context.Context, userID uuid.UUID, name string) (*domain.Tag, error)
	GetTag(ctx context.Context, userID, tagID uuid.UUID) (*domain.Tag, error)
	ListTags(ctx context.Context, userID uuid.UUID) ([]*domain.Tag, error)
	RenameTag(ctx context.Context, userID, tagID uuid.UUID, newName string) (*domain.Tag, error)

	// DeleteTag removes the tag; tasks that referenced it keep existing untagged.
	DeleteTag(ctx context.Context, userID, tagID uuid.UUID) error
}

// TagServiceImpl implements the TagService interface
type TagServiceImpl struct {
	tagStore store.TagStore
	logger   *slog.Logger
}

// NewTagService creates a new TagService
func NewTagService(tagStore store.TagStore, logger *slog.Logger) TagService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TagServiceImpl{
		tagStore: tagStore,
		logger:   logger.With("component", "tag_service"),
	}
}

// CreateTag implements TagService.CreateTag
func (s *TagServiceImpl) CreateTag(ctx context.Context, userID uuid.UUID, name string) (*domain.Tag, error) {
	tag, err := domain.NewTag(userID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	if err := s.tagStore.Create(ctx, tag); err != nil {
		if !errors.Is(err, store.ErrTagExists) {
			s.logger.Error("failed to save tag", "error", err, "user_id", userID)
		}
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	s.logger.Info("tag created", "tag_id", tag.ID, "user_id", userID)
	return tag, nil
}

// GetTag implements TagService.GetTag
func (s *TagServiceImpl) GetTag(ctx context.Context, userID, tagID uuid.UUID) (*domain.Tag, error) {
	tag, err := s.tagStore.GetByID(ctx, userID, tagID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tag: %w", err)
	}
	return tag, nil
}

// ListTags implements TagService.ListTags
func (s *TagServiceImpl) ListTags(ctx context.Context, userID uuid.UUID) ([]*domain.Tag, error) {
	tags, err := s.tagStore.List(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list tags", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// RenameTag implements TagService.RenameTag
func (s *TagServiceImpl) RenameTag(
	ctx context.Context,
	userID, tagID uuid.UUID,
	newName string,
) (*domain.Tag, error) {
	tag, err := s.tagStore.GetByID(ctx, userID, tagID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tag for rename: %w", err)
	}

	tag.Name = strings.TrimSpace(newName)
	if err := s.tagStore.Update(ctx, tag); err != nil {
		if !errors.Is(err, store.ErrTagExists) && !errors.Is(err, domain.ErrValidation) {
			s.logger.Error("failed to rename tag", "error", err, "tag_id", tagID)
		}
		return nil, fmt.Errorf("failed to rename tag: %w", err)
	}

	s.logger.Info("tag renamed", "tag_id", tagID, "user_id", userID)
	return tag, nil
}

// DeleteTag implements TagService.DeleteTag
func (s *TagServiceImpl) DeleteTag(ctx context.Context, userID, tagID uuid.UUID) error {
	if err := s.tagStore.Delete(ctx, userID, tagID); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	s.logger.Info("tag deleted", "tag_id", tagID, "user_id", userID)
	return nil
}
