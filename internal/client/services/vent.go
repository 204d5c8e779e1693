package services

import (
	"context"
	"strings"

	"github.com/rishank14/serenityspace-cli/internal/client/api"
	"github.com/rishank14/serenityspace-cli/internal/client/models"
	"github.com/rishank14/serenityspace-cli/internal/client/session"
	"github.com/rishank14/serenityspace-cli/internal/common"
)

// VentService fronts the vent room. The mood argument on reads is a filter;
// the empty mood means "all".
type VentService interface {
	Feed(ctx context.Context, mood models.Mood) ([]models.Vent, error)
	Mine(ctx context.Context, mood models.Mood) ([]models.Vent, error)
	Create(ctx context.Context, message string, mood models.Mood, visibility models.Visibility) (models.Vent, error)
	Update(ctx context.Context, id, message string, mood models.Mood, visibility models.Visibility) (models.Vent, error)
	Delete(ctx context.Context, id string) error
}

type ventService struct {
	client  api.Client
	session *session.Session
}

func NewVentService(client api.Client, sess *session.Session) VentService {
	return &ventService{client: client, session: sess}
}

func validMoodFilter(mood models.Mood) error {
	if mood != "" && !mood.Valid() {
		return common.ErrInvalidMood
	}
	return nil
}

func (s *ventService) Feed(ctx context.Context, mood models.Mood) ([]models.Vent, error) {
	if err := validMoodFilter(mood); err != nil {
		return nil, err
	}
	return s.client.Vents(ctx, mood)
}

func (s *ventService) Mine(ctx context.Context, mood models.Mood) ([]models.Vent, error) {
	userID := s.session.UserID()
	if userID == "" {
		return nil, common.ErrNotSignedIn
	}
	if err := validMoodFilter(mood); err != nil {
		return nil, err
	}
	return s.client.UserVents(ctx, userID, mood)
}

func validateVent(message string, mood models.Mood, visibility models.Visibility) error {
	if strings.TrimSpace(message) == "" {
		return ErrEmptyMessage
	}
	if !mood.Valid() {
		return common.ErrInvalidMood
	}
	if !visibility.Valid() {
		return common.ErrInvalidVisibility
	}
	return nil
}

func (s *ventService) Create(ctx context.Context, message string, mood models.Mood, visibility models.Visibility) (models.Vent, error) {
	if err := validateVent(message, mood, visibility); err != nil {
		return models.Vent{}, err
	}
	return s.client.CreateVent(ctx, message, mood, visibility)
}

func (s *ventService) Update(ctx context.Context, id, message string, mood models.Mood, visibility models.Visibility) (models.Vent, error) {
	if err := validateVent(message, mood, visibility); err != nil {
		return models.Vent{}, err
	}
	return s.client.UpdateVent(ctx, id, message, mood, visibility)
}

func (s *ventService) Delete(ctx context.Context, id string) error {
	return s.client.DeleteVent(ctx, id)
}
