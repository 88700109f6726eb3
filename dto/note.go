package dto

import "main/model"

type CreateNoteRequest struct {
	Text     string `json:"text"`
	Priority *int   `json:"priority"`
	Tags     string `json:"tags" binding:"omitempty,max=500"`
	Template string `json:"template" binding:"omitempty,label,max=64"`
	Theme    string `json:"theme" binding:"omitempty,label,max=64"`
	Reminder string `json:"reminder" binding:"omitempty,max=64"`
}

// UpdateNoteRequest is a partial patch: nil fields are left untouched.
type UpdateNoteRequest struct {
	Text     *string `json:"text"`
	Priority *int    `json:"priority"`
	Tags     *string `json:"tags" binding:"omitempty,max=500"`
	Archived *bool   `json:"archived"`
	Reminder *string `json:"reminder" binding:"omitempty,max=64"`
	Theme    *string `json:"theme" binding:"omitempty,label,max=64"`
	Template *string `json:"template" binding:"omitempty,label,max=64"`
	Position *int    `json:"position"`
}

type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

type NotesPageResponse struct {
	Items      []model.Note `json:"items"`
	Pagination Pagination   `json:"pagination"`
}

type CreateNoteResponse struct {
	Success bool       `json:"success"`
	Note    model.Note `json:"note"`
}

type UpdateNoteResponse struct {
	Success bool  `json:"success"`
	Changes int64 `json:"changes"`
}

type TogglePinResponse struct {
	Success bool `json:"success"`
	Pinned  bool `json:"pinned"`
}
