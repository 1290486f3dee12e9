// Package observability provides formatted terminal output for the interactive CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/23bam037-tech/HITHESH-P-H/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to n runes, ending with "..." when cut
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// wrap splits s into lines of at most width runes on word boundaries
func wrap(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len([]rune(line))+1+len([]rune(w)) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeList writes a bulleted list capped at limit items
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	for _, item := range items[:min(len(items), limit)] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
	sb.WriteString("\n")
}

// PrintQuestion outputs one assessment question with its options
func (p *Printer) PrintQuestion(index, total int, q types.Question) {
	var sb strings.Builder
	for _, line := range wrap(q.Prompt, boxWidth-4) {
		sb.WriteString(line + "\n")
	}
	if len(q.Options) > 0 {
		sb.WriteString("\n")
		for i, opt := range q.Options {
			fmt.Fprintf(&sb, "  %d) %s\n", i+1, opt)
		}
	}
	title := fmt.Sprintf("QUESTION %d/%d  [%s]", index, total, strings.ReplaceAll(string(q.Kind), "_", " "))
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAssessmentResult outputs the evaluated assessment
func (p *Printer) PrintAssessmentResult(result *types.AssessmentResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Score:  %.0f/100\n\n", result.Score)
	if result.Summary != "" {
		for _, line := range wrap(result.Summary, boxWidth-4) {
			sb.WriteString(line + "\n")
		}
		sb.WriteString("\n")
	}
	writeList(&sb, "Weak areas", result.WeakAreas, maxItemsToShow)

	if len(result.StudySuggestions) > 0 {
		sb.WriteString("Study next:\n")
		for _, s := range result.StudySuggestions[:min(len(result.StudySuggestions), maxItemsToShow)] {
			fmt.Fprintf(&sb, "  • %s: %s\n", s.Topic, s.Resource)
		}
	}

	p.printBox("ASSESSMENT RESULT", strings.TrimRight(sb.String(), "\n"))
}

// PrintRecommendations outputs the ranked career matches. selected is marked.
func (p *Printer) PrintRecommendations(recs []types.CareerRecommendation, selected string) {
	if len(recs) == 0 {
		return
	}

	var sb strings.Builder
	for i, rec := range recs {
		marker := " "
		if rec.Name == selected {
			marker = "▶"
		}
		fmt.Fprintf(&sb, "%s #%d  %s  (%.0f%% fit, %s demand)\n", marker, i+1, rec.Name, rec.FitScore, rec.DemandLevel)
		if rec.SalaryRange != "" {
			fmt.Fprintf(&sb, "     Salary: %s\n", rec.SalaryRange)
		}
		if rec.Reason != "" {
			fmt.Fprintf(&sb, "     %s\n", rec.Reason)
		}
		if i < len(recs)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("CAREER MATCHES", sb.String())
}

// PrintCareerAnalysis outputs the sections of a career analysis
func (p *Printer) PrintCareerAnalysis(analysis *types.FullCareerAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	writeList(&sb, "Skills you have", analysis.SkillGap.ExistingSkills, maxItemsToShow)

	if len(analysis.SkillGap.MissingSkills) > 0 {
		missing := make([]string, 0, len(analysis.SkillGap.MissingSkills))
		for _, m := range analysis.SkillGap.MissingSkills {
			if m.Priority != "" {
				missing = append(missing, fmt.Sprintf("%s (%s)", m.Name, m.Priority))
				continue
			}
			missing = append(missing, m.Name)
		}
		writeList(&sb, "Skills to learn", missing, maxItemsToShow)
	}

	if len(analysis.Roadmap) > 0 {
		sb.WriteString("Roadmap:\n")
		for _, m := range analysis.Roadmap {
			fmt.Fprintf(&sb, "  Month %d: %s\n", m.Month, strings.Join(m.Topics, ", "))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Salary growth:\n")
	for _, pt := range analysis.Growth.Projection() {
		fmt.Fprintf(&sb, "  %-7s %s\n", pt.Label, formatAmount(pt.Amount))
	}
	if analysis.Growth.GrowthPercentage != "" {
		fmt.Fprintf(&sb, "  Growth: %s\n", analysis.Growth.GrowthPercentage)
	}

	title := "CAREER ANALYSIS"
	if analysis.Career != "" {
		title += ": " + strings.ToUpper(analysis.Career)
	}
	p.printBox(title, strings.TrimRight(sb.String(), "\n"))
}

// formatAmount renders 120000 as $120,000
func formatAmount(n int64) string {
	if n == 0 {
		return "n/a"
	}
	s := fmt.Sprintf("%d", n)
	var out []byte
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	return "$" + string(out)
}

// PrintResumeAnalysis outputs the ATS audit of a resume
func (p *Printer) PrintResumeAnalysis(analysis *types.ResumeAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "ATS score:  %.0f/100\n\n", analysis.Score)
	writeList(&sb, "Detected skills", analysis.ExtractedSkills, 8)
	writeList(&sb, "Missing keywords", analysis.MissingKeywords, 8)
	writeList(&sb, "Suggestions", analysis.Suggestions, maxItemsToShow)

	p.printBox("RESUME AUDIT", strings.TrimRight(sb.String(), "\n"))
}

// PrintResumeOptimization outputs the rewrite notes. The optimized text itself
// is written separately so it can be copied verbatim.
func (p *Printer) PrintResumeOptimization(opt *types.ResumeOptimization) {
	if opt == nil {
		return
	}

	var sb strings.Builder
	if opt.Target != "" {
		fmt.Fprintf(&sb, "Target:  %s\n\n", opt.Target)
	}
	writeList(&sb, "Keyword boost", opt.KeywordBoost, 8)
	writeList(&sb, "Formatting tips", opt.FormattingTips, maxItemsToShow)
	if opt.ATSStrategy != "" {
		sb.WriteString("Strategy:\n")
		for _, line := range wrap(opt.ATSStrategy, boxWidth-6) {
			sb.WriteString("  " + line + "\n")
		}
	}

	p.printBox("OPTIMIZED RESUME", strings.TrimRight(sb.String(), "\n"))
}

// PrintChat outputs one chat message
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintChat(msg types.ChatMessage) {
	who := "You"
	if msg.Role == types.RoleAssistant {
		who = "Strategist"
	}
	fmt.Fprintf(p.out, "%s: %s\n", who, msg.Text)
}

// PrintNotice outputs a one-line status message with a level marker
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintNotice(level, message string) {
	marker := "ℹ"
	switch level {
	case "success":
		marker = "✅"
	case "warning":
		marker = "⚠"
	case "error":
		marker = "❌"
	}
	fmt.Fprintf(p.out, "%s %s\n", marker, message)
}
