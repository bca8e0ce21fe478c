// ABOUTME: login/logout/status commands for the admin CLI
// ABOUTME: Credentials prompt, stored-session display, backend reachability

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// cmdLogin prompts for credentials and stores the resulting session.
func (a *cli) cmdLogin(ctx context.Context) error {
	fmt.Print("Username: ")
	if !a.stdin.Scan() {
		return fmt.Errorf("no input")
	}
	username := strings.TrimSpace(a.stdin.Text())

	password, err := readPassword()
	if err != nil {
		return err
	}

	sess, err := a.sessions.Login(ctx, a.client, username, password)
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Signed in as %s\n", sess.Username)
	if sess.IsAdmin {
		fmt.Println("  Admin access: yes")
	} else {
		color.Yellow("  Admin access: no (admin commands will be refused)")
	}
	return nil
}

// cmdLogout clears the stored session.
func (a *cli) cmdLogout() error {
	if _, ok := a.sessions.Current(); !ok {
		fmt.Println("Not signed in.")
		return nil
	}
	if err := a.sessions.Logout(); err != nil {
		return err
	}
	color.Green("✓ Signed out")
	return nil
}

// cmdStatus shows backend reachability and the stored identity.
func (a *cli) cmdStatus(ctx context.Context) error {
	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	cyan.Print(banner)
	fmt.Println()

	// An unauthenticated endpoint doubles as a reachability probe
	if _, err := a.client.BulkTemplateInfo(ctx); err != nil {
		yellow.Printf("  Backend:  ")
		color.Red("UNREACHABLE (%v)\n", err)
	} else {
		green.Printf("  Backend:  ")
		fmt.Printf("connected to %s\n", a.client.BaseURL())
	}

	sess, ok := a.sessions.Current()
	switch {
	case !ok:
		yellow.Printf("  Identity: ")
		fmt.Println("(not signed in)")
	case a.sessions.Expired():
		yellow.Printf("  Identity: ")
		fmt.Printf("%s (token expired, run 'edassist-admin login')\n", sess.Username)
	default:
		green.Printf("  Identity: ")
		fmt.Printf("%s\n", sess.Username)
		green.Printf("  Admin:    ")
		fmt.Printf("%v\n", sess.IsAdmin)
	}

	fmt.Println()
	return nil
}
