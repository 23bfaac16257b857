package models

import "time"

// ReportingAuthority is the company-side contact for an internship.
type ReportingAuthority struct {
	Name        string `json:"name" db:"reporting_name"`
	Designation string `json:"designation" db:"reporting_designation"`
	Email       string `json:"email" db:"reporting_email"`
	Mobile      string `json:"mobile" db:"reporting_mobile"`
}

// Internship defines the internship model based on the 'internships' table
type Internship struct {
	ID                         int64              `json:"id" db:"id"`
	StudentID                  int64              `json:"studentId" db:"student_id"`
	OrganisationName           string             `json:"organisationName" db:"organisation_name"`
	OrganisationAddressWebsite string             `json:"organisationAddressWebsite" db:"organisation_address_website"`
	NatureOfWork               string             `json:"natureOfWork" db:"nature_of_work"`
	ReportingAuthority         ReportingAuthority `json:"reportingAuthority"`
	StartDate                  time.Time          `json:"startDate" db:"start_date"`
	CompletionDate             time.Time          `json:"completionDate" db:"completion_date"`
	Mode                       InternshipMode     `json:"modeOfInternship" db:"mode"`
	Stipend                    StipendFlag        `json:"stipend" db:"stipend"`
	StipendAmount              *float64           `json:"stipendAmount,omitempty" db:"stipend_amount"` // present iff Stipend is Yes
	Remarks                    *string            `json:"remarks,omitempty" db:"remarks"`
	OfferLetter                *string            `json:"offerLetter,omitempty" db:"offer_letter"`
	CompletionCertificate      *string            `json:"completionCertificate,omitempty" db:"completion_certificate"`
	Status                     InternshipStatus   `json:"status" db:"status"`
	CreatedAt                  time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt                  time.Time          `json:"updatedAt" db:"updated_at"`

	Student *User `json:"student,omitempty"` // relation, no db tag
}
