package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/23bam037-tech/HITHESH-P-H/internal/events"
	"github.com/23bam037-tech/HITHESH-P-H/internal/types"
)

// SendMessage appends the user's message at once, then the assistant reply.
// When the assistant fails, a single fallback reply is appended instead and no
// error is returned. The returned message is the assistant entry.
func (c *Controller) SendMessage(ctx context.Context, text string) (types.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return types.ChatMessage{}, c.reject(&ValidationError{Field: "message", Message: "message is empty"})
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return types.ChatMessage{}, ErrClosed
	}
	user := types.ChatMessage{Role: types.RoleUser, Text: text, At: c.now()}
	c.st.chat = append(c.st.chat, user)
	contextLine := c.contextLineLocked()
	view := c.st.view
	c.mu.Unlock()
	c.emit(events.Event{Type: events.ChatMessage, View: string(view), Data: user})

	reply, err := c.engines.Assistant.Reply(ctx, c.id, text, contextLine)
	if err != nil {
		c.log.Warn("assistant reply failed", "error", err)
		reply = ChatFallback
	}

	c.mu.Lock()
	msg := types.ChatMessage{Role: types.RoleAssistant, Text: reply, At: c.now()}
	c.st.chat = append(c.st.chat, msg)
	view = c.st.view
	c.mu.Unlock()
	c.emit(events.Event{Type: events.ChatMessage, View: string(view), Data: msg})

	return msg, nil
}

// contextLineLocked summarizes the profile and focus career for the assistant
func (c *Controller) contextLineLocked() string {
	p := c.st.profile
	if c.st.selected != "" {
		return fmt.Sprintf("Trajectory Focus: %s. Profile: %s, %s.", c.st.selected, p.Education, p.Skills)
	}
	return fmt.Sprintf("User Profile: %s, %s.", p.Education, p.Skills)
}
