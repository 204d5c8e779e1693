package services

import (
	"context"
	"strings"

	"github.com/rishank14/serenityspace-cli/internal/client/api"
	"github.com/rishank14/serenityspace-cli/internal/client/models"
	"github.com/rishank14/serenityspace-cli/internal/client/session"
	"github.com/rishank14/serenityspace-cli/internal/common"
)

// ReflectionService fronts the private reflections journal. Reads are always
// scoped to the signed-in user; emotion and tag are optional filters.
type ReflectionService interface {
	List(ctx context.Context, emotion models.Emotion, tag string) ([]models.Reflection, error)
	Create(ctx context.Context, r models.Reflection) (models.Reflection, error)
	Update(ctx context.Context, id string, r models.Reflection) (models.Reflection, error)
	Delete(ctx context.Context, id string) error
}

type reflectionService struct {
	client  api.Client
	session *session.Session
}

func NewReflectionService(client api.Client, sess *session.Session) ReflectionService {
	return &reflectionService{client: client, session: sess}
}

func (s *reflectionService) List(ctx context.Context, emotion models.Emotion, tag string) ([]models.Reflection, error) {
	userID := s.session.UserID()
	if userID == "" {
		return nil, common.ErrNotSignedIn
	}
	if emotion != "" && !emotion.Valid() {
		return nil, common.ErrInvalidEmotion
	}
	return s.client.Reflections(ctx, userID, emotion, strings.TrimSpace(tag))
}

func validateReflection(r *models.Reflection) error {
	if strings.TrimSpace(r.Content) == "" {
		return ErrEmptyContent
	}
	if r.Emotion != "" && !r.Emotion.Valid() {
		return common.ErrInvalidEmotion
	}
	r.Tags = normalizeTags(r.Tags)
	return nil
}

// normalizeTags trims whitespace and drops empty tags, preserving order.
func normalizeTags(tags []string) []string {
	out := tags[:0]
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (s *reflectionService) Create(ctx context.Context, r models.Reflection) (models.Reflection, error) {
	if err := validateReflection(&r); err != nil {
		return models.Reflection{}, err
	}
	return s.client.CreateReflection(ctx, r)
}

func (s *reflectionService) Update(ctx context.Context, id string, r models.Reflection) (models.Reflection, error) {
	if err := validateReflection(&r); err != nil {
		return models.Reflection{}, err
	}
	return s.client.UpdateReflection(ctx, id, r)
}

func (s *reflectionService) Delete(ctx context.Context, id string) error {
	return s.client.DeleteReflection(ctx, id)
}
