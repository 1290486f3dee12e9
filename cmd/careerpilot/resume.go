package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/23bam037-tech/HITHESH-P-H/internal/types"
	"github.com/23bam037-tech/HITHESH-P-H/internal/workflow"
)

var (
	resumeFile     string
	resumeTarget   string
	resumeOptimize bool
	resumeOut      string
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Audit a resume for ATS readiness and optionally rewrite it",
	Long: `Reads a resume from a PDF or plain-text file, prints the ATS audit and, with
--optimize, rewrites it for the target role. The optimized text is written to stdout
or to --out.`,
	RunE: runResumeCmd,
}

func init() {
	resumeCmd.Flags().StringVarP(&resumeFile, "file", "f", "", "Resume file: .pdf or plain text (required)")
	resumeCmd.Flags().StringVarP(&resumeTarget, "target", "t", "", "Target role for the rewrite (defaults to Professional)")
	resumeCmd.Flags().BoolVar(&resumeOptimize, "optimize", false, "Rewrite the resume for the target role")
	resumeCmd.Flags().StringVarP(&resumeOut, "out", "o", "", "Write the optimized resume to this file instead of stdout")
	_ = resumeCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(resumeCmd)
}

func runResumeCmd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	data, err := os.ReadFile(resumeFile)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	st := newStack(ctx, settings)
	defer st.Close()

	term := newTerminal(os.Stdin, os.Stdout)
	ctrl := workflow.New(st.engines, workflow.Config{
		SessionID: uuid.NewString(),
		Publisher: notifier{printer: term.printer},
		Logger:    slog.Default(),
	})
	defer ctrl.Close()

	// The rewrite targets the career goal when no career is selected
	if resumeTarget != "" {
		p := types.NewProfile()
		p.CareerGoal = resumeTarget
		if err := ctrl.UpdateProfile(p); err != nil {
			return err
		}
	}

	if filepath.Ext(resumeFile) == ".pdf" {
		if err := ctrl.UploadResume(ctx, data, filepath.Base(resumeFile)); err != nil {
			return err
		}
	} else {
		ctrl.SetResumeText(string(data))
	}

	if err := ctrl.AnalyzeResume(ctx); err != nil {
		return err
	}
	term.printer.PrintResumeAnalysis(ctrl.Snapshot().Resume.Analysis)

	if !resumeOptimize {
		return nil
	}
	if err := ctrl.OptimizeResume(ctx); err != nil {
		return err
	}
	term.printer.PrintResumeOptimization(ctrl.Snapshot().Resume.Optimization)

	text, err := ctrl.CopyOptimizedResume()
	if err != nil {
		return err
	}
	if resumeOut != "" {
		if err := os.WriteFile(resumeOut, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write optimized resume: %w", err)
		}
		term.printer.PrintNotice("success", "Optimized resume written to "+resumeOut)
		return nil
	}
	term.println()
	term.println(text)
	return nil
}
