package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/rishank14/serenityspace-cli/internal/client/api"
)

// Chat runs the support-bot conversation loop. An empty line or "back"
// returns to the main prompt; the transcript survives until the process
// exits.
func (a *App) Chat(ctx context.Context) error {
	fmt.Fprintln(a.out, "You're chatting with the SerenitySpace support bot. Empty line to leave.")

	for _, turn := range a.chat.History() {
		fmt.Fprintf(a.out, "%s: %s\n", turn.Sender, turn.Text)
	}

	for {
		text, err := getSimpleText(a.reader, "you", a.out)
		if err != nil {
			return err
		}
		if text == "" || text == "back" {
			return nil
		}

		turn, err := a.chat.Send(ctx, text)
		if err != nil {
			a.report(ctx, err)
			if errors.Is(err, api.ErrSessionExpired) {
				return err
			}
			continue
		}
		fmt.Fprintf(a.out, "bot: %s\n", turn.Text)
	}
}
