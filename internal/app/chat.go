package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/zjregee/tibr/internal/models"
	"github.com/zjregee/tibr/internal/service/conversation"
	"github.com/zjregee/tibr/internal/service/project"
)

// Chat sends messages to the local model server and returns its raw reply.
func (a *App) Chat(model string, messages json.RawMessage) (string, error) {
	body, err := a.ollama.Chat(a.context(), model, messages)
	a.logResult("chat", err, "model", model)
	return body, err
}

// Generate sends a single prompt and returns the raw reply.
func (a *App) Generate(model string, prompt string) (string, error) {
	body, err := a.ollama.Generate(a.context(), model, prompt)
	a.logResult("generate", err, "model", model)
	return body, err
}

func (a *App) ListLocalModels() ([]*models.ModelDescriptor, error) {
	descriptors, err := a.ollama.ListModels(a.context())
	a.logResult("listLocalModels", err, "count", len(descriptors))
	return descriptors, err
}

// SuggestDialogDescription returns a short description for a serialized
// message list.
func (a *App) SuggestDialogDescription(messages string) (string, error) {
	parsed, err := conversation.ParseMessages(messages)
	if err != nil {
		a.logResult("suggestDialogDescription", err)
		return "", err
	}

	description, err := a.describer.Describe(a.context(), parsed)
	a.logResult("suggestDialogDescription", err)
	return description, err
}

// ExportMessages writes a serialized message list to filePath as a markdown
// chat log.
func (a *App) ExportMessages(filePath string, messages string) error {
	filePath = strings.TrimSpace(filePath)
	if filePath == "" {
		return fmt.Errorf("file path is required")
	}

	parsed, err := conversation.ParseMessages(messages)
	if err == nil {
		err = project.WriteFile(filePath, conversation.FormatLog(parsed))
	}
	a.logResult("exportMessages", err, "path", filePath, "messages", len(parsed))
	return err
}
