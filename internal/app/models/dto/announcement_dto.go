package dto

// CreateAnnouncementRequest is the payload for POST /announcements
type CreateAnnouncementRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}
