package model

const (
	DefaultPriority = 2
	MinPriority     = 1
	MaxPriority     = 3

	DefaultTheme = "default"
)

type Note struct {
	ID         int64  `json:"id"`
	Text       string `json:"text"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
	Pinned     bool   `json:"pinned"`
	Priority   int    `json:"priority"`
	Tags       string `json:"tags"`
	Archived   bool   `json:"archived"`
	Reminder   string `json:"reminder"`
	Theme      string `json:"theme"`
	Template   string `json:"template"`
	CloneCount int    `json:"clone_count"`
	Position   int    `json:"position"`
}
