// ABOUTME: Quick-action CRUD commands for the admin CLI
// ABOUTME: Create/update validate required fields before any call fires

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/access-ed/edassist/internal/api"
	"github.com/access-ed/edassist/internal/chat"
)

// cmdQuickActions handles quickactions subcommands.
func (a *cli) cmdQuickActions(ctx context.Context, args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}

	subcmd := "list"
	if len(args) > 0 {
		subcmd = args[0]
		args = args[1:]
	}

	switch subcmd {
	case "list", "ls":
		return a.quickActionsList(ctx)
	case "create", "add":
		return a.quickActionsCreate(ctx, args)
	case "update", "edit":
		return a.quickActionsUpdate(ctx, args)
	case "delete", "rm", "remove":
		return a.quickActionsDelete(ctx, args)
	default:
		return fmt.Errorf("unknown quickactions subcommand: %s (use list, create, update, delete)", subcmd)
	}
}

func (a *cli) quickActionsList(ctx context.Context) error {
	actions, err := a.client.ListQuickActions(ctx)
	if err != nil {
		return a.tearDownOn401(err)
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  Quick Actions")
	cyan.Println("  -------------")

	if len(actions) == 0 {
		fmt.Println("  (none)")
		fmt.Println()
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tICON\tTITLE\tDESCRIPTION\tMESSAGE")
	fmt.Fprintln(w, "  --\t----\t-----\t-----------\t-------")
	for _, qa := range actions {
		fmt.Fprintf(w, "  %s\t%s %s\t%s\t%s\t%s\n",
			truncateText(string(qa.ID), 12), chat.IconGlyph(qa.Icon), qa.Icon,
			truncateText(qa.Title, 24), truncateText(qa.Description, 32), truncateText(qa.Message, 40))
	}
	w.Flush()
	fmt.Println()
	return nil
}

// parseQuickActionInput builds a QuickActionInput from command flags.
func parseQuickActionInput(args []string) api.QuickActionInput {
	icon := parseFlag(args, "--icon", "-i")
	if icon == "" {
		icon = chat.IconNames()[0]
	}
	return api.QuickActionInput{
		Title:       parseFlag(args, "--title", "-t"),
		Description: parseFlag(args, "--description", "-d"),
		Message:     parseFlag(args, "--message", "-m"),
		Icon:        icon,
	}
}

func (a *cli) quickActionsCreate(ctx context.Context, args []string) error {
	input := parseQuickActionInput(args)
	if input.Title == "" || input.Description == "" || input.Message == "" {
		return fmt.Errorf("usage: quickactions create --title T --description D --message M [--icon %s]",
			strings.Join(chat.IconNames(), "|"))
	}

	created, err := a.client.CreateQuickAction(ctx, input)
	if err != nil {
		return a.tearDownOn401(err)
	}

	color.Green("✓ Created quick action: %s", created.ID)
	printQuickAction(created)
	return nil
}

func (a *cli) quickActionsUpdate(ctx context.Context, args []string) error {
	if len(args) < 1 || strings.HasPrefix(args[0], "--") {
		return fmt.Errorf("usage: quickactions update <id> --title T --description D --message M [--icon I]")
	}
	id := args[0]

	input := parseQuickActionInput(args[1:])
	if input.Title == "" || input.Description == "" || input.Message == "" {
		return fmt.Errorf("usage: quickactions update <id> --title T --description D --message M [--icon I]")
	}

	updated, err := a.client.UpdateQuickAction(ctx, id, input)
	if err != nil {
		return a.tearDownOn401(err)
	}

	color.Green("✓ Updated quick action: %s", updated.ID)
	printQuickAction(updated)
	return nil
}

func (a *cli) quickActionsDelete(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: quickactions delete <id>")
	}
	id := args[0]

	if !a.confirm(fmt.Sprintf("Delete quick action %s?", id)) {
		fmt.Println("Canceled.")
		return nil
	}

	if err := a.client.DeleteQuickAction(ctx, id); err != nil {
		return a.tearDownOn401(err)
	}
	color.Green("✓ Deleted quick action: %s", id)
	return nil
}

func printQuickAction(qa *api.QuickAction) {
	fmt.Printf("  Title:       %s\n", qa.Title)
	fmt.Printf("  Description: %s\n", qa.Description)
	fmt.Printf("  Message:     %s\n", qa.Message)
	fmt.Printf("  Icon:        %s %s\n", chat.IconGlyph(qa.Icon), qa.Icon)
}
