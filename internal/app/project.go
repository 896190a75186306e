package app

import (
	"fmt"
	"strings"

	"github.com/zjregee/tibr/internal/models"
	"github.com/zjregee/tibr/internal/service/project"
)

const saveFileStatus = "success"

// GetProjectInfo lists the immediate children of projectPath and remembers
// it as a recent project.
func (a *App) GetProjectInfo(projectPath string) (*models.ProjectInfo, error) {
	info, err := project.ListEntries(projectPath)
	a.logResult("getProjectInfo", err, "path", projectPath)
	if err != nil {
		return nil, err
	}

	if err := a.state.AddRecentProject(projectPath); err != nil {
		a.log.Warn("record recent project failed", "path", projectPath, "err", err)
	}

	return info, nil
}

func (a *App) GetRecentProjects() ([]string, error) {
	recents, err := a.state.RecentProjects()
	a.logResult("getRecentProjects", err)
	if err != nil {
		return nil, err
	}
	return recents.Paths, nil
}

// ClearRecentProjects forgets every recent project.
func (a *App) ClearRecentProjects() error {
	err := a.state.ClearRecentProjects()
	a.logResult("clearRecentProjects", err)
	return err
}

func (a *App) ReadFile(filePath string) (string, error) {
	content, err := project.ReadFile(filePath)
	a.logResult("readFile", err, "path", filePath)
	return content, err
}

// SaveFile writes data to filePath and reports "success".
func (a *App) SaveFile(data string, filePath string) (string, error) {
	err := project.WriteFile(filePath, data)
	a.logResult("saveFile", err, "path", filePath, "bytes", len(data))
	if err != nil {
		return "", err
	}
	return saveFileStatus, nil
}

// GetSourceCode lists source files under projectPath as "./"-relative
// paths.
func (a *App) GetSourceCode(projectPath string) ([]string, error) {
	files, err := project.ListSourceFiles(projectPath, a.sources)
	a.logResult("getSourceCode", err, "path", projectPath, "count", len(files))
	if err != nil {
		return nil, err
	}
	return files, nil
}

// ExportMarkdown renders the project's markdown and diagrams to a PDF and
// returns its path.
func (a *App) ExportMarkdown(projectPath string) (string, error) {
	if strings.TrimSpace(projectPath) == "" {
		err := fmt.Errorf("project path is required")
		a.logResult("exportMarkdown", err, "path", projectPath)
		return "", err
	}

	pdf, err := a.exporter.Export(a.context(), projectPath)
	a.logResult("exportMarkdown", err, "path", projectPath)
	return pdf, err
}
