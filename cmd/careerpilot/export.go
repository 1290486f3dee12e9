package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/23bam037-tech/HITHESH-P-H/internal/export"
)

var (
	exportOut        string
	exportHTML       bool
	exportChromePath string
)

var exportCmd = &cobra.Command{
	Use:   "export <resume.txt>",
	Short: "Render a plain-text resume as an ATS-ready print document",
	Long: `Wraps a plain-text resume in the print layout (Times New Roman, 1 inch margins,
preserved line breaks) and renders it to PDF with headless Chrome. With --html the
print document is written instead of a PDF.`,
	Args: cobra.ExactArgs(1),
	RunE: runExportCmd,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "resume.pdf", "Output file")
	exportCmd.Flags().BoolVar(&exportHTML, "html", false, "Write the HTML print document instead of a PDF")
	exportCmd.Flags().StringVar(&exportChromePath, "chrome-path", "", "Chrome binary (defaults to CHROME_PATH or the system browser)")
	rootCmd.AddCommand(exportCmd)
}

func runExportCmd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	text, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	html, err := export.PrintDocument(string(text))
	if err != nil {
		return err
	}

	var out []byte
	if exportHTML {
		out = []byte(html)
	} else {
		chromePath := settings.ChromePath
		if cmd.Flags().Changed("chrome-path") {
			chromePath = exportChromePath
		}
		if out, err = export.NewRenderer(chromePath).PDF(ctx, html); err != nil {
			return err
		}
	}

	if err := os.WriteFile(exportOut, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOut, err)
	}
	slog.Info("resume exported", "path", exportOut, "bytes", len(out))
	return nil
}
