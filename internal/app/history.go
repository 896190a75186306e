package app

import (
	"fmt"
	"strings"

	"github.com/zjregee/tibr/internal/models"
	"github.com/zjregee/tibr/internal/utils"
)

// InitializeDb creates the chat history and profile tables if missing.
func (a *App) InitializeDb() error {
	err := a.store.Init(a.context())
	a.logResult("initializeDb", err)
	return err
}

// SaveChatDialog inserts a new dialog. The id must not exist yet.
func (a *App) SaveChatDialog(id string, description string, messages string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("dialog ID is required")
	}

	err := a.store.SaveDialog(a.context(), &models.ChatDialog{
		ID:          id,
		Description: description,
		Messages:    messages,
	})
	a.logResult("saveChatDialog", err, "id", id)
	return err
}

// CreateChatDialog inserts a new dialog, generating an id when none is
// given, and returns the id.
func (a *App) CreateChatDialog(id string, description string, messages string) (string, error) {
	if strings.TrimSpace(id) == "" {
		id = utils.NewID()
	}
	if err := a.SaveChatDialog(id, description, messages); err != nil {
		return "", err
	}
	return id, nil
}

// UpdateChatDialog replaces the messages of dialog id. Unknown ids are not
// an error.
func (a *App) UpdateChatDialog(id string, messages string) error {
	err := a.store.UpdateDialog(a.context(), id, messages)
	a.logResult("updateChatDialog", err, "id", id)
	return err
}

// GetChatDialog returns the stored messages of dialog id as a list of zero
// or one element.
func (a *App) GetChatDialog(id string) ([]string, error) {
	messages, err := a.store.GetDialog(a.context(), id)
	a.logResult("getChatDialog", err, "id", id)
	return messages, err
}

// GetChatHistory returns every dialog as an [id, description, messages]
// tuple.
func (a *App) GetChatHistory() ([][]string, error) {
	dialogs, err := a.store.ListDialogs(a.context())
	a.logResult("getChatHistory", err, "count", len(dialogs))
	if err != nil {
		return nil, err
	}

	history := make([][]string, 0, len(dialogs))
	for _, dialog := range dialogs {
		history = append(history, dialog.Tuple())
	}
	return history, nil
}

func (a *App) SaveProfile(id string, email string, preferences string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("profile ID is required")
	}

	err := a.store.SaveProfile(a.context(), &models.Profile{
		ID:          id,
		Email:       email,
		Preferences: preferences,
	})
	a.logResult("saveProfile", err, "id", id)
	return err
}

// CreateProfile inserts a new profile, generating an id when none is given,
// and returns the id.
func (a *App) CreateProfile(id string, email string, preferences string) (string, error) {
	if strings.TrimSpace(id) == "" {
		id = utils.NewID()
	}
	if err := a.SaveProfile(id, email, preferences); err != nil {
		return "", err
	}
	return id, nil
}

func (a *App) UpdateProfile(id string, email string, preferences string) error {
	err := a.store.UpdateProfile(a.context(), &models.Profile{
		ID:          id,
		Email:       email,
		Preferences: preferences,
	})
	a.logResult("updateProfile", err, "id", id)
	return err
}

// GetProfiles returns every profile as an [id, email, preferences] tuple.
func (a *App) GetProfiles() ([][]string, error) {
	profiles, err := a.store.ListProfiles(a.context())
	a.logResult("getProfiles", err, "count", len(profiles))
	if err != nil {
		return nil, err
	}

	result := make([][]string, 0, len(profiles))
	for _, profile := range profiles {
		result = append(result, profile.Tuple())
	}
	return result, nil
}
