package models

// RoleType defines the user account role
type RoleType string

const (
	RoleStudent RoleType = "student"
	RoleFaculty RoleType = "faculty"
	RoleAdmin   RoleType = "admin"
)

// InternshipStatus defines the review state of an internship record
type InternshipStatus string

const (
	InternshipPending  InternshipStatus = "pending"
	InternshipApproved InternshipStatus = "approved"
	InternshipRejected InternshipStatus = "rejected"
)

// InternshipMode defines how the internship is carried out
type InternshipMode string

const (
	ModeVirtual  InternshipMode = "Virtual"
	ModePhysical InternshipMode = "Physical"
)

// StipendFlag mirrors the Yes/No stipend declaration on the submission form
type StipendFlag string

const (
	StipendYes StipendFlag = "Yes"
	StipendNo  StipendFlag = "No"
)
