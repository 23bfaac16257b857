package dto

// ReportingAuthorityRequest is the company contact subrecord on submission
type ReportingAuthorityRequest struct {
	Name        string `json:"name" binding:"required"`
	Designation string `json:"designation" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Mobile      string `json:"mobile" binding:"required"`
}

// CreateInternshipRequest is the multipart form payload for POST /internships.
// The reporting authority arrives as a JSON-encoded form field alongside the
// offer letter file.
type CreateInternshipRequest struct {
	OrganisationName           string `form:"organisationName" binding:"required"`
	OrganisationAddressWebsite string `form:"organisationAddressWebsite" binding:"required"`
	NatureOfWork               string `form:"natureOfWork" binding:"required"`
	ReportingAuthority         string `form:"reportingAuthority" binding:"required"` // JSON subrecord
	StartDate                  string `form:"startDate" binding:"required"`
	CompletionDate             string `form:"completionDate" binding:"required"`
	ModeOfInternship           string `form:"modeOfInternship" binding:"required,oneof=Virtual Physical"`
	Stipend                    string `form:"stipend" binding:"required,oneof=Yes No"`
	StipendAmount              string `form:"stipendAmount"`
	Remarks                    string `form:"remarks"`
}

// UpdateInternshipStatusRequest is the payload for PUT /internships/:id
type UpdateInternshipStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending approved rejected"`
}

// InternshipFilterRequest carries list filters
type InternshipFilterRequest struct {
	Status   *string
	Page     int
	PageSize int
}
