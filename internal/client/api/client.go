// Package api implements the authenticated SerenitySpace REST client. It
// attaches the session's bearer token to every call and makes access-token
// expiry invisible to callers: a 401 on a regular endpoint triggers at most
// one transparent refresh-and-retry cycle per request.
package api

import (
	"context"
	"time"

	"github.com/rishank14/serenityspace-cli/internal/client/models"
)

// Client defines the full remote API surface the application uses.
//
// Error contract (see errors.go): every failed call resolves to exactly one of
// *CredentialError, ErrSessionExpired, ErrUnavailable or *APIError; raw
// transport errors never leak past this boundary.
type Client interface {
	// Auth.
	Login(ctx context.Context, identifier, password string) (models.AuthResult, error)
	Register(ctx context.Context, username, email, password string) (models.AuthResult, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (models.User, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
	UpdateProfile(ctx context.Context, username, email string) (models.User, error)

	// Message vault.
	UpcomingVaults(ctx context.Context, userID string) ([]models.VaultEntry, error)
	DeliveredVaults(ctx context.Context, userID string) ([]models.VaultEntry, error)
	CreateVault(ctx context.Context, message string, deliverAt time.Time) (models.VaultEntry, error)
	UpdateVault(ctx context.Context, id, message string, deliverAt time.Time) (models.VaultEntry, error)
	DeleteVault(ctx context.Context, id string) error

	// Vent room.
	Vents(ctx context.Context, mood models.Mood) ([]models.Vent, error)
	UserVents(ctx context.Context, userID string, mood models.Mood) ([]models.Vent, error)
	CreateVent(ctx context.Context, message string, mood models.Mood, visibility models.Visibility) (models.Vent, error)
	UpdateVent(ctx context.Context, id, message string, mood models.Mood, visibility models.Visibility) (models.Vent, error)
	DeleteVent(ctx context.Context, id string) error

	// Reflections journal.
	Reflections(ctx context.Context, userID string, emotion models.Emotion, tag string) ([]models.Reflection, error)
	CreateReflection(ctx context.Context, r models.Reflection) (models.Reflection, error)
	UpdateReflection(ctx context.Context, id string, r models.Reflection) (models.Reflection, error)
	DeleteReflection(ctx context.Context, id string) error

	// Support bot.
	Chat(ctx context.Context, message string, history []models.ChatTurn) (string, error)
}
