package cli

import (
	"context"
	"fmt"

	"github.com/rishank14/serenityspace-cli/internal/client/models"
)

// Vault opens the message vault view. While the view is open a background
// sweep and the push subscriber keep local state current; both are torn down
// exactly once when the user leaves the view.
func (a *App) Vault(ctx context.Context) error {
	if err := a.vault.Refresh(ctx); err != nil {
		a.report(ctx, err)
		return err
	}

	stop, err := a.vault.Start(ctx)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	defer stop()

	a.renderVault()

	for {
		cmd, err := getSimpleText(a.reader, "vault commands: list, add, edit, delete, back", a.out)
		if err != nil {
			return err
		}

		switch cmd {
		case "", "l", "list":
			a.renderVault()
		case "add":
			a.vaultAdd(ctx)
		case "edit":
			a.vaultEdit(ctx)
		case "delete":
			a.vaultDelete(ctx)
		case "b", "back":
			return nil
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

// renderVault prints the current partition. Entries delivered within the
// highlight window are marked with a leading asterisk.
func (a *App) renderVault() {
	upcoming, delivered, highlighted := a.vault.Snapshot()

	fmt.Fprintf(a.out, "Upcoming (%d):\n", len(upcoming))
	if len(upcoming) == 0 {
		fmt.Fprintln(a.out, "  nothing scheduled")
	}
	for _, e := range upcoming {
		fmt.Fprintf(a.out, "  %s  %s  %s\n", e.ID, models.FormatDeliveryTime(e.DeliverAt), e.Message)
	}

	fmt.Fprintf(a.out, "Delivered (%d):\n", len(delivered))
	if len(delivered) == 0 {
		fmt.Fprintln(a.out, "  nothing delivered yet")
	}
	for _, e := range delivered {
		marker := " "
		if highlighted[e.ID] {
			marker = "*"
		}
		fmt.Fprintf(a.out, "%s %s  %s  %s\n", marker, e.ID, models.FormatDeliveryTime(e.DeliverAt), e.Message)
	}
}

func (a *App) vaultAdd(ctx context.Context) {
	message, err := GetMultiline(a.reader, "Message to your future self", a.out)
	if err != nil {
		a.report(ctx, err)
		return
	}
	deliverAt, err := GetDeliveryTime(a.reader, "Deliver at", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return
	}

	entry, err := a.vault.Create(ctx, message, deliverAt)
	if err != nil {
		a.report(ctx, err)
		return
	}
	fmt.Fprintf(a.out, "Scheduled for %s.\n", models.FormatDeliveryTime(entry.DeliverAt))
}

func (a *App) vaultEdit(ctx context.Context) {
	id, err := getSimpleText(a.reader, "Entry id", a.out)
	if err != nil {
		a.report(ctx, err)
		return
	}
	message, err := GetMultiline(a.reader, "New message", a.out)
	if err != nil {
		a.report(ctx, err)
		return
	}
	deliverAt, err := GetDeliveryTime(a.reader, "Deliver at", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return
	}

	entry, err := a.vault.Update(ctx, id, message, deliverAt)
	if err != nil {
		a.report(ctx, err)
		return
	}
	fmt.Fprintf(a.out, "Rescheduled for %s.\n", models.FormatDeliveryTime(entry.DeliverAt))
}

func (a *App) vaultDelete(ctx context.Context) {
	id, err := getSimpleText(a.reader, "Entry id", a.out)
	if err != nil {
		a.report(ctx, err)
		return
	}
	if err := a.vault.Delete(ctx, id); err != nil {
		a.report(ctx, err)
		return
	}
	fmt.Fprintln(a.out, "Deleted.")
}
