package models

type ModelDescriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
