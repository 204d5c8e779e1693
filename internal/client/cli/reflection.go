package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/rishank14/serenityspace-cli/internal/client/models"
)

// Reflections opens the private reflections journal.
func (a *App) Reflections(ctx context.Context) error {
	for {
		cmd, err := getSimpleText(a.reader, "reflections commands: list, add, edit, delete, back", a.out)
		if err != nil {
			return err
		}

		switch cmd {
		case "", "l", "list":
			a.reflectionList(ctx)
		case "add":
			a.reflectionAdd(ctx)
		case "edit":
			a.reflectionEdit(ctx)
		case "delete":
			a.reflectionDelete(ctx)
		case "b", "back":
			return nil
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

func (a *App) reflectionList(ctx context.Context) {
	emotion, err := getSimpleText(a.reader, fmt.Sprintf("Filter by emotion (empty for all): %v", models.Emotions), a.out)
	if err != nil {
		a.report(ctx, err)
		return
	}
	tag, err := getSimpleText(a.reader, "Filter by tag (empty for all)", a.out)
	if err != nil {
		a.report(ctx, err)
		return
	}

	reflections, err := a.reflections.List(ctx, models.Emotion(emotion), tag)
	if err != nil {
		a.report(ctx, err)
		return
	}

	if len(reflections) == 0 {
		fmt.Fprintln(a.out, "No reflections yet.")
		return
	}
	for _, r := range reflections {
		title := r.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(a.out, "%s  [%s] %s", r.ID, r.Emotion, title)
		if len(r.Tags) > 0 {
			fmt.Fprintf(a.out, "  #%s", strings.Join(r.Tags, " #"))
		}
		fmt.Fprintf(a.out, "\n  %s\n", r.Content)
	}
}

// promptReflection gathers the shared create/edit fields.
func (a *App) promptReflection() (models.Reflection, error) {
	title, err := getSimpleText(a.reader, "Title (optional)", a.out)
	if err != nil {
		return models.Reflection{}, err
	}
	content, err := GetMultiline(a.reader, "What's on your mind?", a.out)
	if err != nil {
		return models.Reflection{}, err
	}
	emotion, err := getSimpleText(a.reader, fmt.Sprintf("Emotion %v", models.Emotions), a.out)
	if err != nil {
		return models.Reflection{}, err
	}
	tagsRaw, err := getSimpleText(a.reader, "Tags (comma separated, optional)", a.out)
	if err != nil {
		return models.Reflection{}, err
	}

	var tags []string
	if tagsRaw != "" {
		tags = strings.Split(tagsRaw, ",")
	}

	return models.Reflection{
		Title:   title,
		Content: content,
		Emotion: models.Emotion(emotion),
		Tags:    tags,
	}, nil
}

func (a *App) reflectionAdd(ctx context.Context) {
	r, err := a.promptReflection()
	if err != nil {
		a.report(ctx, err)
		return
	}
	created, err := a.reflections.Create(ctx, r)
	if err != nil {
		a.report(ctx, err)
		return
	}
	fmt.Fprintf(a.out, "Saved %s.\n", created.ID)
}

func (a *App) reflectionEdit(ctx context.Context) {
	id, err := getSimpleText(a.reader, "Reflection id", a.out)
	if err != nil {
		a.report(ctx, err)
		return
	}
	r, err := a.promptReflection()
	if err != nil {
		a.report(ctx, err)
		return
	}
	if _, err := a.reflections.Update(ctx, id, r); err != nil {
		a.report(ctx, err)
		return
	}
	fmt.Fprintln(a.out, "Updated.")
}

func (a *App) reflectionDelete(ctx context.Context) {
	id, err := getSimpleText(a.reader, "Reflection id", a.out)
	if err != nil {
		a.report(ctx, err)
		return
	}
	if err := a.reflections.Delete(ctx, id); err != nil {
		a.report(ctx, err)
		return
	}
	fmt.Fprintln(a.out, "Deleted.")
}
