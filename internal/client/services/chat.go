package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rishank14/serenityspace-cli/internal/client/api"
	"github.com/rishank14/serenityspace-cli/internal/client/models"
	"github.com/rishank14/serenityspace-cli/internal/logging"
)

// historyWindow is how many of the most recent turns are sent to the backend
// as conversational context with each message.
const historyWindow = 5

// chatApology is shown in place of a bot reply when the backend call fails.
const chatApology = "I'm having trouble responding right now. Please try again in a moment."

// ChatService holds one support-bot conversation for the life of the process.
type ChatService interface {
	// Send posts the user's message and returns the bot's turn. Backend
	// failures (other than an expired session) degrade to an apology turn
	// rather than an error, so the conversation never hard-fails.
	Send(ctx context.Context, text string) (models.ChatTurn, error)
	History() []models.ChatTurn
	Reset()
}

type chatService struct {
	client api.Client
	log    logging.Logger

	mu    sync.Mutex
	turns []models.ChatTurn
}

func NewChatService(client api.Client, log logging.Logger) ChatService {
	return &chatService{client: client, log: log.With("component", "chat")}
}

func (s *chatService) Send(ctx context.Context, text string) (models.ChatTurn, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ChatTurn{}, ErrEmptyMessage
	}

	s.mu.Lock()
	history := lastTurns(s.turns, historyWindow)
	s.turns = append(s.turns, models.ChatTurn{Sender: models.ChatSenderUser, Text: text})
	s.mu.Unlock()

	reply, err := s.client.Chat(ctx, text, history)
	if err != nil {
		if errors.Is(err, api.ErrSessionExpired) {
			return models.ChatTurn{}, err
		}
		s.log.Warn(ctx, "chat request failed", "error", err)
		reply = chatApology
	}

	turn := models.ChatTurn{Sender: models.ChatSenderBot, Text: reply}
	s.mu.Lock()
	s.turns = append(s.turns, turn)
	s.mu.Unlock()
	return turn, nil
}

func (s *chatService) History() []models.ChatTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ChatTurn(nil), s.turns...)
}

func (s *chatService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = nil
}

func lastTurns(turns []models.ChatTurn, n int) []models.ChatTurn {
	if len(turns) > n {
		turns = turns[len(turns)-n:]
	}
	return append([]models.ChatTurn(nil), turns...)
}
