// Package conversation handles chat message lists exchanged with the UI:
// parsing, markdown export and short descriptions.
package conversation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/pkg/errors"
)

// ParseMessages decodes a JSON list of {role, content} entries. Blank input
// is an empty conversation.
func ParseMessages(raw string) ([]*schema.Message, error) {
	if strings.TrimSpace(raw) == "" {
		return []*schema.Message{}, nil
	}

	var messages []*schema.Message
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		return nil, errors.Wrap(err, "decoding messages")
	}

	result := make([]*schema.Message, 0, len(messages))
	for _, msg := range messages {
		if msg != nil {
			result = append(result, msg)
		}
	}

	return result, nil
}

// FormatLog renders messages as a markdown chat log.
func FormatLog(messages []*schema.Message) string {
	var b strings.Builder

	b.WriteString("# Chat Log\n\n")
	for _, msg := range messages {
		fmt.Fprintf(&b, "**[%s]**\n%s\n\n", msg.Role, msg.Content)
	}

	return b.String()
}
