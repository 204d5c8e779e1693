package models

// ChatSender identifies who authored a chat turn.
type ChatSender string

const (
	ChatSenderUser ChatSender = "user"
	ChatSenderBot  ChatSender = "bot"
)

// ChatTurn is one message in the support-bot conversation. The last few turns
// are sent back to the backend as conversational context.
type ChatTurn struct {
	Sender ChatSender `json:"sender"`
	Text   string     `json:"text"`
}
