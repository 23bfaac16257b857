package models

import "time"

// Announcement defines the announcement model based on the 'announcements' table
type Announcement struct {
	ID        int64     `json:"id" db:"id"`
	FacultyID int64     `json:"facultyId" db:"faculty_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	Faculty *User `json:"faculty,omitempty"` // relation, no db tag
}
