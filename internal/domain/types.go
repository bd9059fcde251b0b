package domain

import "fmt"

type Industry string

const (
	IndustryAgriculture        Industry = "Agriculture"
	IndustryBiotech            Industry = "Biotech"
	IndustryConsulting         Industry = "Consulting"
	IndustryCybersecurity      Industry = "Cybersecurity"
	IndustryDefense            Industry = "Defense"
	IndustryECommerce          Industry = "E-Commerce"
	IndustryEducation          Industry = "Education"
	IndustryEnergy             Industry = "Energy"
	IndustryFinance            Industry = "Finance"
	IndustryGaming             Industry = "Gaming"
	IndustryGovernment         Industry = "Government"
	IndustryHealthcare         Industry = "Healthcare"
	IndustryManufacturing      Industry = "Manufacturing"
	IndustryNonprofit          Industry = "Nonprofit"
	IndustryOther              Industry = "Other"
	IndustryRealEstate         Industry = "Real Estate"
	IndustrySaaS               Industry = "SaaS"
	IndustryTelecommunications Industry = "Telecommunications"
	IndustryTransportation     Industry = "Transportation"
	IndustryTravel             Industry = "Travel"
)

// Industries lists every industry in display order.
var Industries = []Industry{
	IndustryAgriculture, IndustryBiotech, IndustryConsulting, IndustryCybersecurity,
	IndustryDefense, IndustryECommerce, IndustryEducation, IndustryEnergy,
	IndustryFinance, IndustryGaming, IndustryGovernment, IndustryHealthcare,
	IndustryManufacturing, IndustryNonprofit, IndustryOther, IndustryRealEstate,
	IndustrySaaS, IndustryTelecommunications, IndustryTransportation, IndustryTravel,
}

func (i Industry) IsValid() bool {
	for _, v := range Industries {
		if v == i {
			return true
		}
	}
	return false
}

type JobStatus string

const (
	JobStatusNotApplied JobStatus = "not applied"
	JobStatusApplied    JobStatus = "applied"
	JobStatusInterview  JobStatus = "interview"
	JobStatusOffer      JobStatus = "offer"
	JobStatusRejected   JobStatus = "rejected"
	JobStatusWithdrawn  JobStatus = "withdrawn"
)

// ParseJobStatus converts a raw string to a JobStatus, returning an error for
// unknown values.
func ParseJobStatus(s string) (JobStatus, error) {
	st := JobStatus(s)
	switch st {
	case JobStatusNotApplied, JobStatusApplied, JobStatusInterview,
		JobStatusOffer, JobStatusRejected, JobStatusWithdrawn:
		return st, nil
	}
	return "", fmt.Errorf("unknown job status %q", s)
}

type ActivityType string

const (
	ActivityTypeStatusChange ActivityType = "status_change"
	ActivityTypeActivity     ActivityType = "activity"
)

func (t ActivityType) IsValid() bool {
	return t == ActivityTypeStatusChange || t == ActivityTypeActivity
}

type GoalType string

const (
	GoalApplicationsCreated  GoalType = "applications_created"
	GoalApplicationsApplied  GoalType = "applications_applied"
	GoalInterviews           GoalType = "interviews"
	GoalOffers               GoalType = "offers"
	GoalProductiveActivities GoalType = "productive_activities"
)

// GoalTypes lists the fixed goal types.
var GoalTypes = []GoalType{
	GoalApplicationsCreated,
	GoalApplicationsApplied,
	GoalInterviews,
	GoalOffers,
	GoalProductiveActivities,
}

func (g GoalType) IsValid() bool {
	for _, v := range GoalTypes {
		if v == g {
			return true
		}
	}
	return false
}
