package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rishank14/serenityspace-cli/internal/client/models"
)

// Login authenticates with either an email or a username: identifiers
// containing '@' are sent as email. A 401 here is a credential rejection and
// never touches the token store.
func (c *RESTClient) Login(ctx context.Context, identifier, password string) (models.AuthResult, error) {
	body := map[string]string{"password": password}
	if strings.Contains(identifier, "@") {
		body["email"] = identifier
	} else {
		body["username"] = identifier
	}

	var result models.AuthResult
	if err := c.do(ctx, http.MethodPost, "/users/login", nil, body, &result); err != nil {
		return models.AuthResult{}, err
	}
	return result, nil
}

func (c *RESTClient) Register(ctx context.Context, username, email, password string) (models.AuthResult, error) {
	body := map[string]string{"username": username, "email": email, "password": password}

	var result models.AuthResult
	if err := c.do(ctx, http.MethodPost, "/users/register", nil, body, &result); err != nil {
		return models.AuthResult{}, err
	}
	return result, nil
}

func (c *RESTClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/users/logout", nil, nil, nil)
}

func (c *RESTClient) CurrentUser(ctx context.Context) (models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/users/current-user", nil, nil, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (c *RESTClient) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	body := map[string]string{"currentPassword": currentPassword, "newPassword": newPassword}
	return c.do(ctx, http.MethodPost, "/users/change-password", nil, body, nil)
}

func (c *RESTClient) UpdateProfile(ctx context.Context, username, email string) (models.User, error) {
	body := map[string]string{"username": username, "email": email}

	var u models.User
	if err := c.do(ctx, http.MethodPatch, "/users/update-profile", nil, body, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// vaultListPayload matches {"message":{"messages":[...]}} on the list calls.
type vaultListPayload struct {
	Messages []models.VaultEntry `json:"messages"`
}

func (c *RESTClient) UpcomingVaults(ctx context.Context, userID string) ([]models.VaultEntry, error) {
	var payload vaultListPayload
	if err := c.do(ctx, http.MethodGet, "/message-vault/upcoming/"+userID, nil, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Messages, nil
}

func (c *RESTClient) DeliveredVaults(ctx context.Context, userID string) ([]models.VaultEntry, error) {
	var payload vaultListPayload
	if err := c.do(ctx, http.MethodGet, "/message-vault/delivered/"+userID, nil, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Messages, nil
}

// vaultBody is the create/update request body. DeliverAt is normalized to UTC
// at this boundary.
func vaultBody(message string, deliverAt time.Time) map[string]string {
	return map[string]string{
		"message":   message,
		"deliverAt": deliverAt.UTC().Format(time.RFC3339),
	}
}

// decodeVaultEntry tolerates both payload shapes the backend uses for writes:
// a bare entry object, or {"messages":[entry]}.
func decodeVaultEntry(raw json.RawMessage) (models.VaultEntry, error) {
	var wrapped vaultListPayload
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped.Messages) > 0 {
		return wrapped.Messages[0], nil
	}
	var entry models.VaultEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return models.VaultEntry{}, err
	}
	return entry, nil
}

func (c *RESTClient) CreateVault(ctx context.Context, message string, deliverAt time.Time) (models.VaultEntry, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/message-vault/create", nil, vaultBody(message, deliverAt), &raw); err != nil {
		return models.VaultEntry{}, err
	}
	return decodeVaultEntry(raw)
}

func (c *RESTClient) UpdateVault(ctx context.Context, id, message string, deliverAt time.Time) (models.VaultEntry, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPatch, "/message-vault/update/"+id, nil, vaultBody(message, deliverAt), &raw); err != nil {
		return models.VaultEntry{}, err
	}
	return decodeVaultEntry(raw)
}

func (c *RESTClient) DeleteVault(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/message-vault/delete/"+id, nil, nil, nil)
}

type ventListPayload struct {
	Vents []models.Vent `json:"vents"`
}

func moodQuery(mood models.Mood) url.Values {
	if mood == "" {
		return nil
	}
	return url.Values{"mood": []string{string(mood)}}
}

func (c *RESTClient) Vents(ctx context.Context, mood models.Mood) ([]models.Vent, error) {
	var payload ventListPayload
	if err := c.do(ctx, http.MethodGet, "/vents", moodQuery(mood), nil, &payload); err != nil {
		return nil, err
	}
	return payload.Vents, nil
}

func (c *RESTClient) UserVents(ctx context.Context, userID string, mood models.Mood) ([]models.Vent, error) {
	var payload ventListPayload
	if err := c.do(ctx, http.MethodGet, "/vents/user/"+userID, moodQuery(mood), nil, &payload); err != nil {
		return nil, err
	}
	return payload.Vents, nil
}

func ventBody(message string, mood models.Mood, visibility models.Visibility) map[string]string {
	return map[string]string{
		"message":    message,
		"mood":       string(mood),
		"visibility": string(visibility),
	}
}

func (c *RESTClient) CreateVent(ctx context.Context, message string, mood models.Mood, visibility models.Visibility) (models.Vent, error) {
	var v models.Vent
	if err := c.do(ctx, http.MethodPost, "/vents/create", nil, ventBody(message, mood, visibility), &v); err != nil {
		return models.Vent{}, err
	}
	return v, nil
}

func (c *RESTClient) UpdateVent(ctx context.Context, id, message string, mood models.Mood, visibility models.Visibility) (models.Vent, error) {
	var v models.Vent
	if err := c.do(ctx, http.MethodPatch, "/vents/update/"+id, nil, ventBody(message, mood, visibility), &v); err != nil {
		return models.Vent{}, err
	}
	return v, nil
}

func (c *RESTClient) DeleteVent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/vents/delete/"+id, nil, nil, nil)
}

func (c *RESTClient) Reflections(ctx context.Context, userID string, emotion models.Emotion, tag string) ([]models.Reflection, error) {
	query := url.Values{}
	if emotion != "" {
		query.Set("emotion", string(emotion))
	}
	if tag != "" {
		query.Set("tag", tag)
	}
	if len(query) == 0 {
		query = nil
	}

	var payload struct {
		Reflections []models.Reflection `json:"reflections"`
	}
	if err := c.do(ctx, http.MethodGet, "/reflections/user/"+userID, query, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Reflections, nil
}

func reflectionBody(r models.Reflection) map[string]any {
	body := map[string]any{"content": r.Content}
	if r.Title != "" {
		body["title"] = r.Title
	}
	if r.Emotion != "" {
		body["emotion"] = string(r.Emotion)
	}
	if len(r.Tags) > 0 {
		body["tags"] = r.Tags
	}
	return body
}

func (c *RESTClient) CreateReflection(ctx context.Context, r models.Reflection) (models.Reflection, error) {
	var created models.Reflection
	if err := c.do(ctx, http.MethodPost, "/reflections/create", nil, reflectionBody(r), &created); err != nil {
		return models.Reflection{}, err
	}
	return created, nil
}

func (c *RESTClient) UpdateReflection(ctx context.Context, id string, r models.Reflection) (models.Reflection, error) {
	var updated models.Reflection
	if err := c.do(ctx, http.MethodPatch, "/reflections/update/"+id, nil, reflectionBody(r), &updated); err != nil {
		return models.Reflection{}, err
	}
	return updated, nil
}

func (c *RESTClient) DeleteReflection(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/reflections/delete/"+id, nil, nil, nil)
}

// Chat sends one user message plus recent history to the support bot and
// returns the bot's reply.
func (c *RESTClient) Chat(ctx context.Context, message string, history []models.ChatTurn) (string, error) {
	body := map[string]any{"message": message, "history": history}

	var payload struct {
		Reply string `json:"reply"`
	}
	if err := c.do(ctx, http.MethodPost, "/chatbot/chat", nil, body, &payload); err != nil {
		return "", err
	}
	return payload.Reply, nil
}

var _ Client = (*RESTClient)(nil)
