package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/23bam037-tech/HITHESH-P-H/internal/types"
	"github.com/23bam037-tech/HITHESH-P-H/internal/workflow"
)

var journeyCmd = &cobra.Command{
	Use:   "journey",
	Short: "Walk through the assessment and career dashboard interactively",
	Long: `Prompts for a profile, runs the generated skills assessment, shows the evaluation,
then opens the career dashboard where each recommended career can be analyzed.`,
	RunE: runJourneyCmd,
}

func init() {
	rootCmd.AddCommand(journeyCmd)
}

func runJourneyCmd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
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

	return runJourney(ctx, ctrl, term)
}

// runJourney drives ctrl from the profile form to the dashboard
func runJourney(ctx context.Context, ctrl *workflow.Controller, term *terminal) error {
	if err := collectProfile(ctx, ctrl, term); err != nil {
		return err
	}
	if err := answerAssessment(ctx, ctrl, term); err != nil {
		return err
	}
	return exploreDashboard(ctx, ctrl, term)
}

// collectProfile asks for the profile until an assessment can be generated
func collectProfile(ctx context.Context, ctrl *workflow.Controller, term *terminal) error {
	snap := ctrl.Snapshot()
	for {
		p := snap.Profile
		var err error

		term.println("Education suggestions: " + strings.Join(snap.Suggestions.Education, ", "))
		if p.Education, err = term.ask("Education", p.Education); err != nil {
			return err
		}
		if p.Skills, err = term.ask("Skills", p.Skills); err != nil {
			return err
		}
		if p.Interests, err = term.ask("Interests", p.Interests); err != nil {
			return err
		}

		levels := make([]string, len(types.ExperienceLevels))
		def := 0
		for i, l := range types.ExperienceLevels {
			levels[i] = string(l)
			if l == p.ExperienceLevel {
				def = i
			}
		}
		term.println("Experience level:")
		idx, err := term.choose("Level", levels, def)
		if err != nil {
			return err
		}
		p.ExperienceLevel = types.ExperienceLevels[idx]

		term.println("Career goal suggestions: " + strings.Join(snap.Suggestions.CareerGoals, ", "))
		if p.CareerGoal, err = term.ask("Career goal", p.CareerGoal); err != nil {
			return err
		}
		if p.Location, err = term.ask("Location", p.Location); err != nil {
			return err
		}

		if err := ctrl.UpdateProfile(p); err != nil {
			return err
		}

		err = ctrl.StartAssessment(ctx)
		var invalid *workflow.ValidationError
		if errors.As(err, &invalid) {
			snap = ctrl.Snapshot()
			continue
		}
		return err
	}
}

// answerAssessment asks every question, then submits and prints the evaluation
func answerAssessment(ctx context.Context, ctrl *workflow.Controller, term *terminal) error {
	questions := ctrl.Snapshot().Questions
	for i, q := range questions {
		term.printer.PrintQuestion(i+1, len(questions), q)
		for {
			answer, err := term.ask("Answer", "")
			if err != nil {
				return err
			}
			answer = resolveOption(q, answer)
			err = ctrl.RecordAnswer(q.ID, answer)
			var invalid *workflow.ValidationError
			if errors.As(err, &invalid) {
				continue
			}
			if err != nil {
				return err
			}
			if strings.TrimSpace(answer) != "" {
				break
			}
		}
	}

	if err := ctrl.SubmitAssessment(ctx); err != nil {
		return err
	}
	snap := ctrl.Snapshot()
	term.printer.PrintAssessmentResult(snap.AssessmentResult)
	return nil
}

// resolveOption maps an option number to the option text for choice questions
func resolveOption(q types.Question, answer string) string {
	if !q.Kind.IsChoice() {
		return answer
	}
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(q.Options) {
		return q.Options[n-1]
	}
	return answer
}

// exploreDashboard shows the recommendations and analyzes careers until the user finishes
func exploreDashboard(ctx context.Context, ctrl *workflow.Controller, term *terminal) error {
	if err := ctrl.ProceedToDashboard(ctx); err != nil {
		return err
	}

	for {
		ctrl.WaitBackground()
		snap := ctrl.Snapshot()
		term.printer.PrintRecommendations(snap.Recommendations, snap.SelectedCareer)
		if snap.AnalysisStatus == workflow.AnalysisReady {
			term.printer.PrintCareerAnalysis(snap.Analysis)
		}

		reply, err := term.ask("Career number to analyze, r to retry, or Enter to finish", "")
		if errors.Is(err, io.EOF) || (err == nil && reply == "") {
			return nil
		}
		if err != nil {
			return err
		}

		if strings.EqualFold(reply, "r") {
			if err := ctrl.RetryAnalysis(); err != nil && !isGuardError(err) {
				return err
			}
			continue
		}

		n, convErr := strconv.Atoi(reply)
		if convErr != nil || n < 1 || n > len(snap.Recommendations) {
			term.println(fmt.Sprintf("Please enter a number between 1 and %d.", len(snap.Recommendations)))
			continue
		}
		if err := ctrl.SelectCareer(snap.Recommendations[n-1].Name); err != nil && !isGuardError(err) {
			return err
		}
	}
}

// isGuardError reports whether err is a rejected guard the user can correct
func isGuardError(err error) bool {
	var invalid *workflow.ValidationError
	var transition *workflow.TransitionError
	return errors.As(err, &invalid) || errors.As(err, &transition)
}
