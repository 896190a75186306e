package models

// ChatDialog is one row of the chat history. Messages holds the serialized
// message list exactly as the UI sent it.
type ChatDialog struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Messages    string `json:"messages"`
}

func (d *ChatDialog) Tuple() []string {
	return []string{d.ID, d.Description, d.Messages}
}

type Profile struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Preferences string `json:"preferences"`
}

func (p *Profile) Tuple() []string {
	return []string{p.ID, p.Email, p.Preferences}
}
