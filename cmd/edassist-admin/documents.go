// ABOUTME: Document commands: list/delete PDFs and URLs, single uploads
// ABOUTME: Deletes require explicit confirmation before the call fires

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/access-ed/edassist/internal/api"
)

// cmdPDFs handles the pdfs subcommands.
func (a *cli) cmdPDFs(ctx context.Context, args []string) error {
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
		return a.listDocuments(ctx, "Ingested PDFs", a.client.ListPDFs)
	case "delete", "rm", "remove":
		return a.deleteDocument(ctx, args, "PDF", a.client.DeletePDF)
	default:
		return fmt.Errorf("unknown pdfs subcommand: %s (use list, delete)", subcmd)
	}
}

// cmdURLs handles the urls subcommands.
func (a *cli) cmdURLs(ctx context.Context, args []string) error {
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
		return a.listDocuments(ctx, "Ingested URLs", a.client.ListURLs)
	case "delete", "rm", "remove":
		return a.deleteDocument(ctx, args, "URL", a.client.DeleteURL)
	default:
		return fmt.Errorf("unknown urls subcommand: %s (use list, delete)", subcmd)
	}
}

func (a *cli) listDocuments(ctx context.Context, heading string, list func(context.Context) ([]api.Document, error)) error {
	docs, err := list(ctx)
	if err != nil {
		return a.tearDownOn401(err)
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Printf("  %s\n", heading)
	cyan.Printf("  %s\n", dashes(len(heading)))

	if len(docs) == 0 {
		fmt.Println("  (none)")
		fmt.Println()
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  TITLE\tSOURCE URL\tRETRIEVED\tCHUNKS")
	fmt.Fprintln(w, "  -----\t----------\t---------\t------")
	for _, d := range docs {
		retrieved := d.RetrievedDate
		if t, err := time.Parse(time.RFC3339, d.RetrievedDate); err == nil {
			retrieved = t.Format("Jan 02 2006 15:04")
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%d\n",
			truncateText(d.Title, 40), truncateText(d.SourceURL, 48), retrieved, d.NumChunks)
	}
	w.Flush()
	fmt.Println()
	return nil
}

// deleteDocument removes a record after confirmation. Both title and
// source URL are required because the pair identifies the record; records
// sharing only one of the two fields must stay.
func (a *cli) deleteDocument(ctx context.Context, args []string, kind string, del func(ctx context.Context, title, sourceURL string) error) error {
	title := parseFlag(args, "--title", "-t")
	sourceURL := parseFlag(args, "--source-url", "-s")
	if title == "" || sourceURL == "" {
		return fmt.Errorf("usage: delete --title <title> --source-url <url>")
	}

	if !a.confirm(fmt.Sprintf("Delete %s %q (%s)?", kind, title, sourceURL)) {
		fmt.Println("Canceled.")
		return nil
	}

	if err := del(ctx, title, sourceURL); err != nil {
		return a.tearDownOn401(err)
	}
	color.Green("✓ Deleted %s: %s", kind, title)
	return nil
}

// cmdUpload handles single-document ingestion.
func (a *cli) cmdUpload(ctx context.Context, args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	if len(args) < 1 {
		return fmt.Errorf("usage: upload pdf|url [flags]")
	}

	switch args[0] {
	case "pdf":
		return a.uploadPDF(ctx, args[1:])
	case "url":
		return a.uploadURL(ctx, args[1:])
	default:
		return fmt.Errorf("unknown upload subcommand: %s (use pdf, url)", args[0])
	}
}

func (a *cli) uploadPDF(ctx context.Context, args []string) error {
	path := parseFlag(args, "--file", "-f")
	title := parseFlag(args, "--title", "-t")
	sourceURL := parseFlag(args, "--source-url", "-s")
	if path == "" || title == "" || sourceURL == "" {
		return fmt.Errorf("usage: upload pdf --file <path> --title <title> --source-url <url>")
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	result, err := a.client.UploadPDF(ctx, f, filepath.Base(path), title, sourceURL)
	if err != nil {
		return a.tearDownOn401(err)
	}
	printUploadResult(result)
	return nil
}

func (a *cli) uploadURL(ctx context.Context, args []string) error {
	pageURL := parseFlag(args, "--url", "-u")
	title := parseFlag(args, "--title", "-t")
	if pageURL == "" || title == "" {
		return fmt.Errorf("usage: upload url --url <url> --title <title>")
	}

	result, err := a.client.UploadURL(ctx, pageURL, title)
	if err != nil {
		return a.tearDownOn401(err)
	}
	printUploadResult(result)
	return nil
}

// printUploadResult shows the server's record summary for a fresh ingest.
func printUploadResult(r *api.UploadResult) {
	green := color.New(color.FgGreen)
	green.Printf("✓ Ingested: %s\n", r.Title)
	fmt.Printf("  Source URL: %s\n", r.SourceURL)
	fmt.Printf("  Retrieved:  %s\n", r.RetrievedDate)
	fmt.Printf("  Chunks:     %d\n", r.NumChunks)
	if r.Message != "" {
		fmt.Printf("  Message:    %s\n", r.Message)
	}
}

func dashes(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '-'
	}
	return string(b)
}
