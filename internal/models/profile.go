// internal/models/profile.go
package models

import "time"

// ExamStatus is the canonical preparation status for exams, SOP and similar
// tracked items. Free-form inputs are normalized into one of these three.
type ExamStatus string

const (
	StatusNotStarted ExamStatus = "NOT_STARTED"
	StatusInProgress ExamStatus = "IN_PROGRESS"
	StatusCompleted  ExamStatus = "COMPLETED"
)

// UserProfile is the student's advising profile, keyed by email.
type UserProfile struct {
	ID                 int64      `json:"id"`
	Email              string     `json:"email"`
	Name               string     `json:"name,omitempty"`
	GPA                *float64   `json:"gpa,omitempty"` // 0-10 scale
	Degree             string     `json:"degree,omitempty"`
	FieldOfStudy       string     `json:"fieldOfStudy,omitempty"`
	GraduationYear     *int       `json:"graduationYear,omitempty"`
	IntendedDegree     string     `json:"intendedDegree,omitempty"`
	IntakeYear         *int       `json:"intakeYear,omitempty"`
	PreferredCountries []string   `json:"preferredCountries,omitempty"`
	BudgetPerYear      *int       `json:"budgetPerYear,omitempty"` // USD
	FundingPlan        string     `json:"fundingPlan,omitempty"`
	IELTSStatus        ExamStatus `json:"ieltsStatus"`
	GREGMATStatus      ExamStatus `json:"greGmatStatus"`
	SOPStatus          ExamStatus `json:"sopStatus"`
	ProfileComplete    bool       `json:"profileComplete"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}
