package storage

import (
	"context"

	"github.com/pkg/errors"

	"github.com/zjregee/tibr/internal/models"
)

// SaveDialog inserts a new dialog. An existing id is a primary key
// violation, not an overwrite.
func (s *Store) SaveDialog(ctx context.Context, dialog *models.ChatDialog) error {
	if dialog == nil {
		return errors.New("dialog is required")
	}

	return s.exec(ctx, "inserting chat dialog",
		`INSERT INTO chat_history (id, description, messages) VALUES (?, ?, ?)`,
		dialog.ID, dialog.Description, dialog.Messages)
}

// UpdateDialog replaces the messages of a dialog. Unknown ids match no row
// and are not an error.
func (s *Store) UpdateDialog(ctx context.Context, id string, messages string) error {
	return s.exec(ctx, "updating chat dialog",
		`UPDATE chat_history SET messages = ? WHERE id = ?`,
		messages, id)
}

// GetDialog returns the stored messages of a dialog: one element when the id
// exists, none otherwise.
func (s *Store) GetDialog(ctx context.Context, id string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `SELECT messages FROM chat_history WHERE id = ?`, id)
	if err != nil {
		return nil, errors.Wrap(err, "querying chat dialog")
	}
	defer rows.Close()

	messages := make([]string, 0, 1)
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, errors.Wrap(err, "scanning chat dialog row")
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating chat dialog rows")
	}

	return messages, nil
}

// ListDialogs returns every dialog in insertion order.
func (s *Store) ListDialogs(ctx context.Context) ([]*models.ChatDialog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `SELECT id, description, messages FROM chat_history ORDER BY rowid`)
	if err != nil {
		return nil, errors.Wrap(err, "querying chat history")
	}
	defer rows.Close()

	dialogs := make([]*models.ChatDialog, 0)
	for rows.Next() {
		dialog := &models.ChatDialog{}
		if err := rows.Scan(&dialog.ID, &dialog.Description, &dialog.Messages); err != nil {
			return nil, errors.Wrap(err, "scanning chat history row")
		}
		dialogs = append(dialogs, dialog)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating chat history rows")
	}

	return dialogs, nil
}
