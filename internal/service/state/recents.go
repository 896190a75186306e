package state

import (
	"encoding/json"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/zjregee/tibr/internal/models"
)

const recentProjectsKey = "projects:recents"

// MaxRecentProjects bounds the recent-projects list.
const MaxRecentProjects = 10

// RecentProjects returns recently opened project paths, oldest first.
func (s *State) RecentProjects() (*models.RecentProjects, error) {
	value, err := s.get([]byte(recentProjectsKey))
	if err != nil {
		return nil, err
	}

	if len(value) == 0 {
		return &models.RecentProjects{Paths: []string{}}, nil
	}

	var record models.RecentProjects
	if err := json.Unmarshal(value, &record); err != nil {
		return nil, errors.Wrap(err, "unmarshaling recent projects")
	}
	if record.Paths == nil {
		record.Paths = []string{}
	}

	return &record, nil
}

// AddRecentProject moves path to the end of the list, dropping the oldest
// entries beyond MaxRecentProjects.
func (s *State) AddRecentProject(path string) error {
	if path == "" {
		return errors.New("project path is required")
	}
	path = filepath.Clean(path)

	s.recentsMu.Lock()
	defer s.recentsMu.Unlock()

	current, err := s.RecentProjects()
	if err != nil {
		return err
	}

	paths := make([]string, 0, len(current.Paths)+1)
	for _, p := range current.Paths {
		if p != path {
			paths = append(paths, p)
		}
	}
	paths = append(paths, path)
	if len(paths) > MaxRecentProjects {
		paths = paths[len(paths)-MaxRecentProjects:]
	}

	return s.saveRecentProjects(&models.RecentProjects{Paths: paths})
}

// ClearRecentProjects forgets every recent project.
func (s *State) ClearRecentProjects() error {
	s.recentsMu.Lock()
	defer s.recentsMu.Unlock()

	return s.delete([]byte(recentProjectsKey))
}

func (s *State) saveRecentProjects(record *models.RecentProjects) error {
	data, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "marshaling recent projects")
	}

	return s.put([]byte(recentProjectsKey), data)
}

func seedRecentProjects(s *State) error {
	return s.saveRecentProjects(&models.RecentProjects{Paths: []string{}})
}
