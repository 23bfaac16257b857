package dto

// InternshipStatsResponse aggregates internship records for the faculty dashboard
type InternshipStatsResponse struct {
	TotalInternships    int64            `json:"totalInternships"`
	ApprovedInternships int64            `json:"approvedInternships"`
	PendingInternships  int64            `json:"pendingInternships"`
	RejectedInternships int64            `json:"rejectedInternships"`
	ByMode              map[string]int64 `json:"byMode"`
	AverageStipend      float64          `json:"averageStipend"`
}

// ODStatsResponse aggregates OD requests for the faculty dashboard
type ODStatsResponse struct {
	TotalODs        int64            `json:"totalODs"`
	CompletedODs    int64            `json:"completedODs"`
	PendingODs      int64            `json:"pendingODs"`
	RejectedODs     int64            `json:"rejectedODs"`
	ByStep          map[string]int64 `json:"byStep"`
	AverageDuration float64          `json:"averageDuration"` // days, inclusive of both ends
}
