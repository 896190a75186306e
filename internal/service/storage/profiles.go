package storage

import (
	"context"

	"github.com/pkg/errors"

	"github.com/zjregee/tibr/internal/models"
)

// SaveProfile inserts a new profile. Email may be empty.
func (s *Store) SaveProfile(ctx context.Context, profile *models.Profile) error {
	if profile == nil {
		return errors.New("profile is required")
	}

	return s.exec(ctx, "inserting profile",
		`INSERT INTO profiles (id, email, preferences) VALUES (?, ?, ?)`,
		profile.ID, profile.Email, profile.Preferences)
}

// UpdateProfile rewrites email and preferences of an existing profile.
func (s *Store) UpdateProfile(ctx context.Context, profile *models.Profile) error {
	if profile == nil {
		return errors.New("profile is required")
	}

	return s.exec(ctx, "updating profile",
		`UPDATE profiles SET email = ?, preferences = ? WHERE id = ?`,
		profile.Email, profile.Preferences, profile.ID)
}

// ListProfiles returns every profile in insertion order.
func (s *Store) ListProfiles(ctx context.Context) ([]*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `SELECT id, email, preferences FROM profiles ORDER BY rowid`)
	if err != nil {
		return nil, errors.Wrap(err, "querying profiles")
	}
	defer rows.Close()

	profiles := make([]*models.Profile, 0)
	for rows.Next() {
		profile := &models.Profile{}
		if err := rows.Scan(&profile.ID, &profile.Email, &profile.Preferences); err != nil {
			return nil, errors.Wrap(err, "scanning profile row")
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating profile rows")
	}

	return profiles, nil
}
