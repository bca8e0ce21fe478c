// ABOUTME: Admin CLI for managing the assistant's ingested documents
// ABOUTME: PDF/URL collections, bulk URL import, and quick-action CRUD

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/access-ed/edassist/internal/api"
	"github.com/access-ed/edassist/internal/config"
	"github.com/access-ed/edassist/internal/session"
)

const banner = `
          _               _     _
  ___  __| | __ _ ___ ___(_)___| |_
 / _ \/ _' |/ _' / __/ __| / __| __|
|  __/ (_| | (_| \__ \__ \ \__ \ |_
 \___|\__,_|\__,_|___/___/_|___/\__|  admin
`

// cli bundles what every command needs.
type cli struct {
	client   *api.Client
	sessions *session.Store
	stdin    *bufio.Scanner
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	_ = godotenv.Load()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app, err := newCLI()
	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "login":
		err = app.cmdLogin(ctx)
	case "logout":
		err = app.cmdLogout()
	case "status":
		err = app.cmdStatus(ctx)
	case "pdfs":
		err = app.cmdPDFs(ctx, args)
	case "urls":
		err = app.cmdURLs(ctx, args)
	case "upload":
		err = app.cmdUpload(ctx, args)
	case "bulk":
		err = app.cmdBulk(ctx, args)
	case "quickactions", "qa":
		err = app.cmdQuickActions(ctx, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
}

func newCLI() (*cli, error) {
	cfgPath, err := config.DefaultPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		return nil, err
	}

	sessionPath, err := session.DefaultPath()
	if err != nil {
		return nil, err
	}
	sessions, err := session.NewStore(sessionPath)
	if err != nil {
		return nil, err
	}

	return &cli{
		client:   api.New(cfg.Backend.URL, sessions.Token),
		sessions: sessions,
		stdin:    bufio.NewScanner(os.Stdin),
	}, nil
}

func printUsage() {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	cyan.Print(banner)
	fmt.Println()
	fmt.Println("Usage: edassist-admin <command> [args]")
	fmt.Println()
	yellow.Println("Commands:")
	fmt.Println("  login                          Sign in and store the session")
	fmt.Println("  logout                         Clear the stored session")
	fmt.Println("  status                         Show backend reachability and identity")
	fmt.Println("  pdfs                           List ingested PDF documents")
	fmt.Println("  pdfs delete --title T --source-url U")
	fmt.Println("                                 Delete the PDF matching both fields")
	fmt.Println("  urls                           List ingested URL documents")
	fmt.Println("  urls delete --title T --source-url U")
	fmt.Println("                                 Delete the URL matching both fields")
	fmt.Println("  upload pdf --file F --title T --source-url U")
	fmt.Println("                                 Ingest a single PDF file")
	fmt.Println("  upload url --url U --title T   Ingest a single web page")
	fmt.Println("  bulk template                  Show bulk import instructions")
	fmt.Println("  bulk download [--out F]        Save the bulk template spreadsheet")
	fmt.Println("  bulk upload --file F           Import URLs from a spreadsheet")
	fmt.Println("  quickactions                   List quick actions")
	fmt.Println("  quickactions create|update|delete")
	fmt.Println("                                 Manage quick actions (see subcommand usage)")
	fmt.Println()
	yellow.Println("Environment:")
	fmt.Println("  EDASSIST_BACKEND_URL           Backend URL when no config file exists")
	fmt.Println()
	yellow.Println("Examples:")
	fmt.Println("  edassist-admin login")
	fmt.Println("  edassist-admin pdfs")
	fmt.Println("  edassist-admin upload url --url https://example.org/guide --title 'Braille Guide'")
	fmt.Println()
}

// requireSession refuses to run an admin command without a stored,
// unexpired session. The route-guard equivalent of the browser client.
func (a *cli) requireSession() error {
	if a.sessions.Expired() {
		return fmt.Errorf("no valid session; run 'edassist-admin login' first")
	}
	if !a.sessions.IsAdmin() {
		return fmt.Errorf("the stored session does not have admin access")
	}
	return nil
}

// tearDownOn401 invalidates the stored session when err is an
// authentication failure, so the next command prompts for login.
func (a *cli) tearDownOn401(err error) error {
	if err == nil {
		return nil
	}
	if isUnauthorized(err) {
		a.sessions.Invalidate()
		return fmt.Errorf("session expired; run 'edassist-admin login' again")
	}
	return err
}

func isUnauthorized(err error) bool {
	return errors.Is(err, api.ErrUnauthorized)
}

// confirm asks for explicit y/N confirmation before a destructive call.
func (a *cli) confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	if !a.stdin.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(a.stdin.Text()))
	return answer == "y" || answer == "yes"
}

// parseFlag scans args for "--name value" (or its alias) pairs.
func parseFlag(args []string, name, alias string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == name || (alias != "" && args[i] == alias) {
			return args[i+1]
		}
	}
	return ""
}

func truncateText(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
