package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/rishank14/serenityspace-cli/internal/client/api"
	"github.com/rishank14/serenityspace-cli/internal/client/models"
	"github.com/rishank14/serenityspace-cli/internal/client/session"
	"github.com/rishank14/serenityspace-cli/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func signedOutSession() *session.Session {
	return session.New()
}

func signedInSession(userID string) *session.Session {
	s := session.New()
	s.SetToken("test-token")
	s.SetUser(models.User{ID: userID, Username: "casey", Email: "casey@example.com"})
	return s
}

// fakeClient implements api.Client with overridable function fields. Methods
// without an override fail the calling test by returning ErrorInternal-style
// zero behavior; tests set only the fields they exercise.
type fakeClient struct {
	loginFunc          func(ctx context.Context, identifier, password string) (models.AuthResult, error)
	registerFunc       func(ctx context.Context, username, email, password string) (models.AuthResult, error)
	logoutFunc         func(ctx context.Context) error
	currentUserFunc    func(ctx context.Context) (models.User, error)
	changePasswordFunc func(ctx context.Context, currentPassword, newPassword string) error
	updateProfileFunc  func(ctx context.Context, username, email string) (models.User, error)

	upcomingFunc    func(ctx context.Context, userID string) ([]models.VaultEntry, error)
	deliveredFunc   func(ctx context.Context, userID string) ([]models.VaultEntry, error)
	createVaultFunc func(ctx context.Context, message string, deliverAt time.Time) (models.VaultEntry, error)
	updateVaultFunc func(ctx context.Context, id, message string, deliverAt time.Time) (models.VaultEntry, error)
	deleteVaultFunc func(ctx context.Context, id string) error

	ventsFunc      func(ctx context.Context, mood models.Mood) ([]models.Vent, error)
	userVentsFunc  func(ctx context.Context, userID string, mood models.Mood) ([]models.Vent, error)
	createVentFunc func(ctx context.Context, message string, mood models.Mood, visibility models.Visibility) (models.Vent, error)
	updateVentFunc func(ctx context.Context, id, message string, mood models.Mood, visibility models.Visibility) (models.Vent, error)
	deleteVentFunc func(ctx context.Context, id string) error

	reflectionsFunc      func(ctx context.Context, userID string, emotion models.Emotion, tag string) ([]models.Reflection, error)
	createReflectionFunc func(ctx context.Context, r models.Reflection) (models.Reflection, error)
	updateReflectionFunc func(ctx context.Context, id string, r models.Reflection) (models.Reflection, error)
	deleteReflectionFunc func(ctx context.Context, id string) error

	chatFunc func(ctx context.Context, message string, history []models.ChatTurn) (string, error)
}

var _ api.Client = (*fakeClient)(nil)

func (f *fakeClient) Login(ctx context.Context, identifier, password string) (models.AuthResult, error) {
	return f.loginFunc(ctx, identifier, password)
}

func (f *fakeClient) Register(ctx context.Context, username, email, password string) (models.AuthResult, error) {
	return f.registerFunc(ctx, username, email, password)
}

func (f *fakeClient) Logout(ctx context.Context) error {
	return f.logoutFunc(ctx)
}

func (f *fakeClient) CurrentUser(ctx context.Context) (models.User, error) {
	return f.currentUserFunc(ctx)
}

func (f *fakeClient) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	return f.changePasswordFunc(ctx, currentPassword, newPassword)
}

func (f *fakeClient) UpdateProfile(ctx context.Context, username, email string) (models.User, error) {
	return f.updateProfileFunc(ctx, username, email)
}

func (f *fakeClient) UpcomingVaults(ctx context.Context, userID string) ([]models.VaultEntry, error) {
	return f.upcomingFunc(ctx, userID)
}

func (f *fakeClient) DeliveredVaults(ctx context.Context, userID string) ([]models.VaultEntry, error) {
	return f.deliveredFunc(ctx, userID)
}

func (f *fakeClient) CreateVault(ctx context.Context, message string, deliverAt time.Time) (models.VaultEntry, error) {
	return f.createVaultFunc(ctx, message, deliverAt)
}

func (f *fakeClient) UpdateVault(ctx context.Context, id, message string, deliverAt time.Time) (models.VaultEntry, error) {
	return f.updateVaultFunc(ctx, id, message, deliverAt)
}

func (f *fakeClient) DeleteVault(ctx context.Context, id string) error {
	return f.deleteVaultFunc(ctx, id)
}

func (f *fakeClient) Vents(ctx context.Context, mood models.Mood) ([]models.Vent, error) {
	return f.ventsFunc(ctx, mood)
}

func (f *fakeClient) UserVents(ctx context.Context, userID string, mood models.Mood) ([]models.Vent, error) {
	return f.userVentsFunc(ctx, userID, mood)
}

func (f *fakeClient) CreateVent(ctx context.Context, message string, mood models.Mood, visibility models.Visibility) (models.Vent, error) {
	return f.createVentFunc(ctx, message, mood, visibility)
}

func (f *fakeClient) UpdateVent(ctx context.Context, id, message string, mood models.Mood, visibility models.Visibility) (models.Vent, error) {
	return f.updateVentFunc(ctx, id, message, mood, visibility)
}

func (f *fakeClient) DeleteVent(ctx context.Context, id string) error {
	return f.deleteVentFunc(ctx, id)
}

func (f *fakeClient) Reflections(ctx context.Context, userID string, emotion models.Emotion, tag string) ([]models.Reflection, error) {
	return f.reflectionsFunc(ctx, userID, emotion, tag)
}

func (f *fakeClient) CreateReflection(ctx context.Context, r models.Reflection) (models.Reflection, error) {
	return f.createReflectionFunc(ctx, r)
}

func (f *fakeClient) UpdateReflection(ctx context.Context, id string, r models.Reflection) (models.Reflection, error) {
	return f.updateReflectionFunc(ctx, id, r)
}

func (f *fakeClient) DeleteReflection(ctx context.Context, id string) error {
	return f.deleteReflectionFunc(ctx, id)
}

func (f *fakeClient) Chat(ctx context.Context, message string, history []models.ChatTurn) (string, error) {
	return f.chatFunc(ctx, message, history)
}
