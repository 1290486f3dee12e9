package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/23bam037-tech/HITHESH-P-H/internal/document"
)

var extractOut string

var extractCmd = &cobra.Command{
	Use:   "extract <file.pdf>",
	Short: "Extract plain text from a PDF resume",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtractCmd,
}

func init() {
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "Write the text to this file instead of stdout")
	rootCmd.AddCommand(extractCmd)
}

func runExtractCmd(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	text, err := document.NewPDFExtractor().Extract(data, filepath.Base(args[0]))
	if err != nil {
		return err
	}

	if extractOut != "" {
		if err := os.WriteFile(extractOut, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write text: %w", err)
		}
		return nil
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}
