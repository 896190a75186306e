package models

type ProjectInfo struct {
	Files       []string `json:"files"`
	Directories []string `json:"directories"`
}

type RecentProjects struct {
	Paths []string `json:"paths"`
}
