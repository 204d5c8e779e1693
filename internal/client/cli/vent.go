package cli

import (
	"context"
	"fmt"

	"github.com/rishank14/serenityspace-cli/internal/client/models"
)

// Vents opens the vent room: the public feed plus the user's own vents.
func (a *App) Vents(ctx context.Context) error {
	for {
		cmd, err := getSimpleText(a.reader, "vents commands: feed, mine, add, edit, delete, back", a.out)
		if err != nil {
			return err
		}

		switch cmd {
		case "", "feed":
			a.ventList(ctx, false)
		case "mine":
			a.ventList(ctx, true)
		case "add":
			a.ventAdd(ctx)
		case "edit":
			a.ventEdit(ctx)
		case "delete":
			a.ventDelete(ctx)
		case "b", "back":
			return nil
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

func (a *App) askMood(prompt string) (models.Mood, error) {
	raw, err := getSimpleText(a.reader, fmt.Sprintf("%s %v", prompt, models.Moods), a.out)
	if err != nil {
		return "", err
	}
	return models.Mood(raw), nil
}

func (a *App) ventList(ctx context.Context, mine bool) {
	mood, err := a.askMood("Filter by mood (empty for all):")
	if err != nil {
		a.report(ctx, err)
		return
	}

	var vents []models.Vent
	if mine {
		vents, err = a.vents.Mine(ctx, mood)
	} else {
		vents, err = a.vents.Feed(ctx, mood)
	}
	if err != nil {
		a.report(ctx, err)
		return
	}

	if len(vents) == 0 {
		fmt.Fprintln(a.out, "No vents here yet.")
		return
	}
	for _, v := range vents {
		author := "anonymous"
		if v.User != nil && v.User.Username != "" {
			author = v.User.Username
		}
		fmt.Fprintf(a.out, "%s  [%s] %s: %s\n", v.ID, v.Mood, author, v.Message)
	}
}

func (a *App) ventAdd(ctx context.Context) {
	message, err := GetMultiline(a.reader, "What do you want to get off your chest?", a.out)
	if err != nil {
		a.report(ctx, err)
		return
	}
	mood, err := a.askMood("Mood:")
	if err != nil {
		a.report(ctx, err)
		return
	}
	visibility, err := getSimpleText(a.reader, "Visibility (public/private)", a.out)
	if err != nil {
		a.report(ctx, err)
		return
	}

	vent, err := a.vents.Create(ctx, message, mood, models.Visibility(visibility))
	if err != nil {
		a.report(ctx, err)
		return
	}
	fmt.Fprintf(a.out, "Posted %s.\n", vent.ID)
}

func (a *App) ventEdit(ctx context.Context) {
	id, err := getSimpleText(a.reader, "Vent id", a.out)
	if err != nil {
		a.report(ctx, err)
		return
	}
	message, err := GetMultiline(a.reader, "New message", a.out)
	if err != nil {
		a.report(ctx, err)
		return
	}
	mood, err := a.askMood("Mood:")
	if err != nil {
		a.report(ctx, err)
		return
	}
	visibility, err := getSimpleText(a.reader, "Visibility (public/private)", a.out)
	if err != nil {
		a.report(ctx, err)
		return
	}

	if _, err := a.vents.Update(ctx, id, message, mood, models.Visibility(visibility)); err != nil {
		a.report(ctx, err)
		return
	}
	fmt.Fprintln(a.out, "Updated.")
}

func (a *App) ventDelete(ctx context.Context) {
	id, err := getSimpleText(a.reader, "Vent id", a.out)
	if err != nil {
		a.report(ctx, err)
		return
	}
	if err := a.vents.Delete(ctx, id); err != nil {
		a.report(ctx, err)
		return
	}
	fmt.Fprintln(a.out, "Deleted.")
}
