package models

import (
	"time"

	"github.com/arvindh/interntrack/internal/app/approval"
)

// OD defines an on-duty request based on the 'ods' table. The approval flow
// is stored as JSONB; current_step is kept in sync with the flow so the
// read-side queue query can filter on it.
type OD struct {
	ID           int64         `json:"id" db:"id"`
	StudentID    int64         `json:"studentId" db:"student_id"`
	InternshipID int64         `json:"internshipId" db:"internship_id"`
	StartDate    time.Time     `json:"startDate" db:"start_date"`
	EndDate      time.Time     `json:"endDate" db:"end_date"`
	Purpose      string        `json:"purpose" db:"purpose"`
	Flow         approval.Flow `json:"approvalFlow" db:"approval_flow"`
	CurrentStep  approval.Step `json:"currentApprovalStep" db:"current_step"`
	CreatedAt    time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time     `json:"updatedAt" db:"updated_at"`

	Student    *User       `json:"student,omitempty"`    // relation, no db tag
	Internship *Internship `json:"internship,omitempty"` // relation, no db tag
}
