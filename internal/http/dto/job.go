package dto

import (
	"time"

	"github.com/cesargomez89/jobtracker/internal/domain"
)

type JobResponse struct {
	ID            int64  `json:"id"`
	EmployerID    int64  `json:"employerId"`
	EmployerName  string `json:"employerName"`
	Title         string `json:"title"`
	Status        string `json:"status"`
	InterestLevel *int   `json:"interestLevel,omitempty"`
	Favorited     bool   `json:"favorited"`
	Archived      bool   `json:"archived"`
	Link          string `json:"link,omitempty"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

func NewJobResponse(j *domain.JobWithEmployer) JobResponse {
	resp := JobResponse{
		ID:            j.ID,
		EmployerID:    j.EmployerID,
		EmployerName:  j.Employer.Name,
		Title:         j.Title,
		Status:        string(j.Status),
		InterestLevel: j.InterestLevel,
		Favorited:     j.Favorited,
		Archived:      j.Archived,
		CreatedAt:     j.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     j.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if j.Link != nil {
		resp.Link = *j.Link
	}
	return resp
}

type JobListResponse struct {
	Jobs       []JobResponse `json:"jobs"`
	Pagination *Pagination   `json:"pagination"`
}

type StatusUpdateRequest struct {
	Status *string `json:"status"`
}

func (r *StatusUpdateRequest) Validate() []ValidationError {
	return validateStatus(r.Status)
}
