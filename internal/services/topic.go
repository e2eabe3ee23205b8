package services

import (
	"context"
	"errors"
	"fmt"

	"confdesk/internal/authz"
	"confdesk/internal/domain"
)

type topicService struct {
	topicRepo domain.TopicRepository
}

// NewTopicService creates a TopicService.
func NewTopicService(topicRepo domain.TopicRepository) domain.TopicService {
	return &topicService{topicRepo: topicRepo}
}

func (s *topicService) List(ctx context.Context) ([]*domain.Topic, error) {
	topics, err := s.topicRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	return topics, nil
}

func (s *topicService) Rename(ctx context.Context, actor *domain.User, topicID, name string) error {
	if err := authz.Authorize(actor, authz.ActionUpdate, authz.ResourceTopic, nil); err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("topic name is required: %w", domain.ErrInvalidInput)
	}

	if err := s.topicRepo.UpdateName(ctx, topicID, name); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) {
			return err
		}
		return fmt.Errorf("rename topic: %w", err)
	}
	return nil
}

func (s *topicService) Delete(ctx context.Context, actor *domain.User, topicID string) error {
	if err := authz.Authorize(actor, authz.ActionDelete, authz.ResourceTopic, nil); err != nil {
		return err
	}

	if err := s.topicRepo.Delete(ctx, topicID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete topic: %w", err)
	}
	return nil
}
