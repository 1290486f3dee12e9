// Package assistant answers free-form career questions for the chat view.
package assistant

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/23bam037-tech/HITHESH-P-H/internal/llm"
	"github.com/23bam037-tech/HITHESH-P-H/internal/prompts"
)

// ErrEmptyReply is returned when the model answers with no usable text
var ErrEmptyReply = errors.New("assistant returned an empty reply")

// Single answers each message with one stateless model call
type Single struct {
	client llm.Client
}

// NewSingle creates a stateless assistant on the given client
func NewSingle(client llm.Client) *Single {
	return &Single{client: client}
}

// Reply answers message with the profile context line. conversationID is unused.
func (s *Single) Reply(ctx context.Context, _ string, message, contextLine string) (string, error) {
	template := prompts.MustGet(prompts.AssistantFile, "chat-turn")
	prompt := prompts.Format(template, map[string]string{
		"Message": message,
		"Context": contextLine,
	})

	raw, err := s.client.Generate(ctx, llm.Request{
		Prompt:   prompt,
		Tier:     llm.TierLite,
		Grounded: true,
		FastPath: true,
	})
	if err != nil {
		return "", err
	}

	reply := PlainText(raw)
	if reply == "" {
		return "", ErrEmptyReply
	}
	return reply, nil
}

// Forget is a no-op; Single keeps no conversation state
func (s *Single) Forget(context.Context, string) error { return nil }

var tagPattern = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)

// PlainText strips HTML markup from a reply and trims it.
// Block elements and <br> become line breaks.
func PlainText(s string) string {
	s = strings.TrimSpace(s)
	if !tagPattern.MatchString(s) {
		return s
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	doc.Find("script, style").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, li, div, h1, h2, h3, h4, h5, h6, tr").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml("\n")
	})

	lines := strings.Split(doc.Text(), "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
