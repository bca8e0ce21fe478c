// ABOUTME: Interactive chat client for the Access-Ed assistant backend
// ABOUTME: Readline loop with quick-action menu, local history, and JWT auth

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/access-ed/edassist/internal/api"
	"github.com/access-ed/edassist/internal/chat"
	"github.com/access-ed/edassist/internal/config"
	"github.com/access-ed/edassist/internal/markdown"
	"github.com/access-ed/edassist/internal/session"
	"github.com/access-ed/edassist/internal/store"
	"github.com/access-ed/edassist/internal/view"
)

func main() {
	configPath := flag.String("config", "", "Config file path (default: XDG config dir)")
	server := flag.String("server", "", "Backend URL (overrides config)")
	flag.Parse()

	// A .env next to the working directory can hold EDASSIST_BACKEND_URL
	_ = godotenv.Load()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *server != "" {
		cfg.Backend.URL = *server
	}
	setupLogging(cfg.LogLevel())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nGoodbye!")
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	defaultPath, err := config.DefaultPath()
	if err != nil {
		return nil, err
	}
	return config.LoadOrDefault(defaultPath)
}

// setupLogging routes slog to stderr so transcript output stays clean.
func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

func run(ctx context.Context, cfg *config.Config) error {
	sessionPath, err := session.DefaultPath()
	if err != nil {
		return err
	}
	sessions, err := session.NewStore(sessionPath)
	if err != nil {
		return err
	}

	client := api.New(cfg.Backend.URL, sessions.Token)
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Printf("edassist connected to %s\n", cfg.Backend.URL)

	if sessions.Expired() {
		fmt.Println("Please sign in to continue.")
		if err := promptLogin(ctx, scanner, client, sessions); err != nil {
			return err
		}
	}
	if current, ok := sessions.Current(); ok && current.Username != "" {
		fmt.Printf("Signed in as %s\n", current.Username)
	}
	fmt.Println("Type a message and press Enter. Type 'help' or 'menu' for quick actions, /help for commands.")
	fmt.Println()

	ledger, err := openLedger(cfg)
	if err != nil {
		slog.Warn("local history disabled", "error", err)
	} else if ledger != nil {
		defer ledger.Close()
	}

	transcript := chat.NewTranscript(client, sessions, nil)

	// The quick-action menu is fetched once per run and only re-fetched on
	// an explicit /menu
	var quickActions view.Loadable[[]api.QuickAction]
	if actions, err := quickActions.Load(ctx, client.ListQuickActions); err != nil {
		slog.Warn("failed to load quick actions", "error", err)
	} else {
		printQuickActions(actions)
	}

	return chatLoop(ctx, scanner, transcript, &quickActions, client, sessions, ledger)
}

func chatLoop(
	ctx context.Context,
	scanner *bufio.Scanner,
	transcript *chat.Transcript,
	quickActions *view.Loadable[[]api.QuickAction],
	client *api.Client,
	sessions *session.Store,
	ledger *store.Ledger,
) error {
	for {
		fmt.Print("> ")

		input, err := readLine(ctx, scanner)
		if err == io.EOF || err == context.Canceled {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		switch {
		case input == "/quit" || input == "/exit" || input == "/q":
			return nil

		case input == "/help":
			printHelp()
			fmt.Println()
			continue

		case input == "/menu":
			actions, err := quickActions.Load(ctx, client.ListQuickActions)
			if err != nil {
				fmt.Printf("[error] %v\n\n", err)
				continue
			}
			printQuickActions(actions)
			continue

		case input == "/history":
			if err := printHistory(ctx, ledger); err != nil {
				fmt.Printf("[error] %v\n", err)
			}
			fmt.Println()
			continue
		}

		// A bare number picks a quick action when the menu is showing
		if transcript.ShowingQuickActions() {
			if n, err := strconv.Atoi(input); err == nil {
				actions, state, _ := quickActions.Get()
				if state == view.Loaded && n >= 1 && n <= len(actions) {
					input = actions[n-1].Message
					fmt.Printf("%s\n", input)
				}
			}
		}

		appended, err := transcript.Submit(ctx, input)
		if err != nil {
			fmt.Printf("[error] %v\n\n", err)
			continue
		}

		for _, msg := range appended {
			record(ctx, ledger, msg)
			if msg.Role == chat.RoleAssistant {
				fmt.Println(markdown.Render(msg.Content))
			}
		}
		fmt.Println()

		if transcript.ShowingQuickActions() {
			if actions, state, _ := quickActions.Get(); state == view.Loaded {
				printQuickActions(actions)
			}
		}

		// The 401 path tears the session down after its grace delay; a
		// logged-out store means every further turn would fail the same way
		if _, ok := sessions.Current(); !ok {
			fmt.Println("Signed out. Run edassist-tui again to sign back in.")
			return nil
		}
	}
}

// readLine reads one line, honoring context cancellation.
func readLine(ctx context.Context, scanner *bufio.Scanner) (string, error) {
	inputCh := make(chan string, 1)
	errCh := make(chan error, 1)

	go func() {
		if scanner.Scan() {
			inputCh <- scanner.Text()
		} else if err := scanner.Err(); err != nil {
			errCh <- err
		} else {
			errCh <- io.EOF
		}
	}()

	select {
	case <-ctx.Done():
		return "", context.Canceled
	case err := <-errCh:
		return "", err
	case input := <-inputCh:
		return input, nil
	}
}

// promptLogin reads credentials interactively and stores the session.
func promptLogin(ctx context.Context, scanner *bufio.Scanner, client *api.Client, sessions *session.Store) error {
	for {
		fmt.Print("Username: ")
		if !scanner.Scan() {
			return io.EOF
		}
		username := strings.TrimSpace(scanner.Text())

		password, err := readPassword()
		if err != nil {
			return err
		}

		if _, err := sessions.Login(ctx, client, username, password); err != nil {
			fmt.Printf("Sign-in failed: %v\n", err)
			continue
		}
		return nil
	}
}

func openLedger(cfg *config.Config) (*store.Ledger, error) {
	path := cfg.Chat.HistoryPath
	if path == "" {
		var err error
		path, err = store.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return store.Open(path)
}

// record appends a transcript message to the local ledger, logging rather
// than failing the turn on error.
func record(ctx context.Context, ledger *store.Ledger, msg chat.Message) {
	if ledger == nil {
		return
	}
	if err := ledger.Append(ctx, string(msg.Role), msg.Content); err != nil {
		slog.Warn("failed to record message", "error", err)
	}
}

func printHistory(ctx context.Context, ledger *store.Ledger) error {
	if ledger == nil {
		return fmt.Errorf("local history is disabled")
	}
	entries, err := ledger.Recent(ctx, 20)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No conversation history")
		return nil
	}

	fmt.Println(strings.Repeat("-", 60))
	for _, e := range entries {
		prefix := "\033[32m←\033[0m " // assistant
		if e.Role == string(chat.RoleUser) {
			prefix = "\033[34m→\033[0m "
		}
		text := e.Content
		if len(text) > 200 {
			text = text[:197] + "..."
		}
		fmt.Printf("%s%s\n", prefix, text)
	}
	fmt.Println(strings.Repeat("-", 60))
	return nil
}

func printQuickActions(actions []api.QuickAction) {
	if len(actions) == 0 {
		return
	}
	fmt.Println("Select a category to learn more about making education accessible for visually impaired students:")
	for i, a := range actions {
		fmt.Printf("  %d. %s %s - %s\n", i+1, chat.IconGlyph(a.Icon), a.Title, a.Description)
	}
	fmt.Println("Enter a number to ask, or type your own question.")
	fmt.Println()
}

func printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  /menu          Reload and show the quick-action menu")
	fmt.Println("  /history       Show recent local conversation history")
	fmt.Println("  /help          Show this help")
	fmt.Println("  /quit          Exit")
	fmt.Println()
	fmt.Println("Typing 'help' or 'menu' (no slash) asks the assistant to show categories.")
}
