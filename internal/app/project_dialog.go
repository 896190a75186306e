package app

import (
	"os"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// SelectProjectDirectory opens a directory picker and returns the chosen
// path, or "" when the dialog is cancelled. The choice is remembered as a
// recent project.
func (a *App) SelectProjectDirectory() (string, error) {
	defaultDirectory := ""
	recents, err := a.state.RecentProjects()
	if err == nil && len(recents.Paths) > 0 {
		defaultDirectory = recents.Paths[len(recents.Paths)-1]
	} else if home, err := os.UserHomeDir(); err == nil {
		defaultDirectory = home
	}

	path, err := runtime.OpenDirectoryDialog(a.context(), runtime.OpenDialogOptions{
		Title:                "Select Project Directory",
		DefaultDirectory:     defaultDirectory,
		CanCreateDirectories: true,
	})
	if err != nil {
		a.logResult("selectProjectDirectory", err)
		return "", err
	}
	if path == "" {
		return "", nil
	}

	if err := a.state.AddRecentProject(path); err != nil {
		a.log.Warn("record recent project failed", "path", path, "err", err)
	}
	a.logResult("selectProjectDirectory", nil, "path", path)

	return path, nil
}
