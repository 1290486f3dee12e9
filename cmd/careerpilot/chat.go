package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/23bam037-tech/HITHESH-P-H/internal/types"
	"github.com/23bam037-tech/HITHESH-P-H/internal/workflow"
)

var (
	chatEducation string
	chatGoal      string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the career strategist",
	Long: `Starts an interactive conversation with the career strategist. The optional
profile flags give the strategist context. Type "exit" or send EOF to leave.`,
	RunE: runChatCmd,
}

func init() {
	chatCmd.Flags().StringVar(&chatEducation, "education", "", "Your education, for context")
	chatCmd.Flags().StringVar(&chatGoal, "goal", "", "Your career goal, for context")
	rootCmd.AddCommand(chatCmd)
}

func runChatCmd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st := newStack(ctx, settings)
	defer st.Close()

	term := newTerminal(os.Stdin, os.Stdout)
	ctrl := workflow.New(st.engines, workflow.Config{
		SessionID: uuid.NewString(),
		Logger:    slog.Default(),
	})
	defer ctrl.Close()

	p := types.NewProfile()
	p.Education = chatEducation
	p.CareerGoal = chatGoal
	if err := ctrl.UpdateProfile(p); err != nil {
		return err
	}

	return runChat(ctx, ctrl, term)
}

// runChat relays lines to the strategist until exit or end of input
func runChat(ctx context.Context, ctrl *workflow.Controller, term *terminal) error {
	if err := ctrl.Navigate(workflow.ViewChat); err != nil {
		return err
	}
	for {
		line, err := term.ask("You", "")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		reply, err := ctrl.SendMessage(ctx, line)
		if err != nil {
			return err
		}
		term.printer.PrintChat(reply)
	}
}
