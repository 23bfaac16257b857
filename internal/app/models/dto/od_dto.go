package dto

// CreateODRequest is the payload for POST /od
type CreateODRequest struct {
	InternshipID int64  `json:"internship" binding:"required"`
	StartDate    string `json:"startDate" binding:"required"`
	EndDate      string `json:"endDate" binding:"required"`
	Purpose      string `json:"purpose" binding:"required,min=10"`
}

// DecideODRequest is the payload for PUT /od/:id. The acting role is resolved
// from the caller's capabilities against the OD's current step.
type DecideODRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}
