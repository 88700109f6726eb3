package model

type NoteStats struct {
	Total      int         `json:"total"`
	Pinned     int         `json:"pinned"`
	Unpinned   int         `json:"unpinned"`
	Archived   int         `json:"archived"`
	ByPriority map[int]int `json:"by_priority"`
}
