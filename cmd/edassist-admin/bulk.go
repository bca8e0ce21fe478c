// ABOUTME: Bulk URL import commands: template info/download and upload
// ABOUTME: Renders the backend's per-row result table after an import

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/fatih/color"
)

// cmdBulk handles bulk import subcommands.
func (a *cli) cmdBulk(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: bulk template|download|upload [flags]")
	}

	switch args[0] {
	case "template":
		return a.bulkTemplate(ctx)
	case "download":
		return a.bulkDownload(ctx, args[1:])
	case "upload":
		return a.bulkUpload(ctx, args[1:])
	default:
		return fmt.Errorf("unknown bulk subcommand: %s (use template, download, upload)", args[0])
	}
}

// bulkTemplate prints the spreadsheet-preparation instructions. This is
// the one admin surface that works unauthenticated.
func (a *cli) bulkTemplate(ctx context.Context) error {
	instructions, err := a.client.BulkTemplateInfo(ctx)
	if err != nil {
		return err
	}
	fmt.Println(instructions)
	return nil
}

// bulkDownload saves the binary template spreadsheet to disk.
func (a *cli) bulkDownload(ctx context.Context, args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}

	out := parseFlag(args, "--out", "-o")
	if out == "" {
		out = "bulk-upload-template.xlsx"
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	n, err := a.client.DownloadBulkTemplate(ctx, f)
	if err != nil {
		os.Remove(out)
		return a.tearDownOn401(err)
	}

	color.Green("✓ Saved template to %s (%d bytes)", filepath.Clean(out), n)
	return nil
}

// bulkUpload imports a spreadsheet of URLs and renders per-row results.
func (a *cli) bulkUpload(ctx context.Context, args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}

	path := parseFlag(args, "--file", "-f")
	if path == "" {
		return fmt.Errorf("usage: bulk upload --file <path>")
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	results, err := a.client.BulkUploadURLs(ctx, f, filepath.Base(path))
	if err != nil {
		return a.tearDownOn401(err)
	}

	if len(results) == 0 {
		fmt.Println("No rows processed.")
		return nil
	}

	succeeded := 0
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  URL\tTITLE\tSTATUS\tDETAIL")
	fmt.Fprintln(w, "  ---\t-----\t------\t------")
	for _, r := range results {
		status := "FAILED"
		if r.Success {
			status = "ok"
			succeeded++
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n",
			truncateText(r.URL, 48), truncateText(r.Title, 32), status, truncateText(r.Reason(), 48))
	}
	w.Flush()

	fmt.Println()
	if succeeded == len(results) {
		color.Green("✓ Imported %d of %d rows", succeeded, len(results))
	} else {
		color.Yellow("Imported %d of %d rows; failures above are per-row and did not stop the batch", succeeded, len(results))
	}
	return nil
}
