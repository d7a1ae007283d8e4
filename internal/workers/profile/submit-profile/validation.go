// internal/workers/profile/submit-profile/validation.go
package submitprofile

import (
	"fmt"
	"strings"

	"advisor-workers/internal/common/validation"
	"advisor-workers/internal/engine"
	"advisor-workers/internal/models"
)

// profileSchema checks payload shape; which fields are REQUIRED for a complete
// profile is a separate question answered by missingFields.
var profileSchema = map[string]interface{}{
	"type":                 "object",
	"additionalProperties": true,
	"properties": map[string]interface{}{
		"name":           map[string]interface{}{"type": "string"},
		"gpa":            map[string]interface{}{"type": "number", "minimum": 0, "maximum": 10},
		"degree":         map[string]interface{}{"type": "string"},
		"fieldOfStudy":   map[string]interface{}{"type": "string"},
		"graduationYear": map[string]interface{}{"type": "integer", "minimum": 1950},
		"intendedDegree": map[string]interface{}{"type": "string"},
		"intakeYear":     map[string]interface{}{"type": "integer", "minimum": 2000},
		"preferredCountries": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "string"},
		},
		"budgetPerYear": map[string]interface{}{"type": "integer", "minimum": 0},
		"fundingPlan":   map[string]interface{}{"type": "string"},
		"ieltsStatus":   map[string]interface{}{"type": "string"},
		"greGmatStatus": map[string]interface{}{"type": "string"},
		"sopStatus":     map[string]interface{}{"type": "string"},
	},
}

func validatePayload(email string, payload map[string]interface{}) *validation.ValidationResult {
	result := validation.ValidateAgainstSchema(payload, profileSchema)
	if !validation.ValidateEmail(email) {
		result.Valid = false
		result.Errors = append(result.Errors, validation.ValidationError{
			Field:   "userEmail",
			Message: fmt.Sprintf("%q is not a valid email address", email),
			Code:    "INVALID_EMAIL",
		})
	}
	return result
}

// applyPayload merges the submitted fields onto the stored profile. Absent
// keys leave the stored value untouched so partial submissions accumulate.
// Returns the exam-status fields that were not recognized.
func applyPayload(p *models.UserProfile, payload map[string]interface{}) []string {
	var unrecognized []string

	if v, ok := payload["name"].(string); ok {
		p.Name = strings.TrimSpace(v)
	}
	if v, ok := payload["gpa"].(float64); ok {
		p.GPA = &v
	}
	if v, ok := payload["degree"].(string); ok {
		p.Degree = strings.TrimSpace(v)
	}
	if v, ok := payload["fieldOfStudy"].(string); ok {
		p.FieldOfStudy = strings.TrimSpace(v)
	}
	if v, ok := payload["graduationYear"].(float64); ok {
		year := int(v)
		p.GraduationYear = &year
	}
	if v, ok := payload["intendedDegree"].(string); ok {
		p.IntendedDegree = strings.TrimSpace(v)
	}
	if v, ok := payload["intakeYear"].(float64); ok {
		year := int(v)
		p.IntakeYear = &year
	}
	if raw, ok := payload["preferredCountries"].([]interface{}); ok {
		countries := make([]string, 0, len(raw))
		for _, c := range raw {
			if s, ok := c.(string); ok {
				countries = append(countries, s)
			}
		}
		p.PreferredCountries = engine.NormalizeCountries(countries)
	}
	if v, ok := payload["budgetPerYear"].(float64); ok {
		budget := int(v)
		p.BudgetPerYear = &budget
	}
	if v, ok := payload["fundingPlan"].(string); ok {
		p.FundingPlan = strings.TrimSpace(v)
	}
	if v, ok := payload["ieltsStatus"].(string); ok {
		status, recognized := engine.NormalizeStatus(v)
		p.IELTSStatus = status
		if !recognized {
			unrecognized = append(unrecognized, "ieltsStatus")
		}
	}
	if v, ok := payload["greGmatStatus"].(string); ok {
		status, recognized := engine.NormalizeStatus(v)
		p.GREGMATStatus = status
		if !recognized {
			unrecognized = append(unrecognized, "greGmatStatus")
		}
	}
	if v, ok := payload["sopStatus"].(string); ok {
		status, recognized := engine.NormalizeStatus(v)
		p.SOPStatus = status
		if !recognized {
			unrecognized = append(unrecognized, "sopStatus")
		}
	}

	return unrecognized
}

// missingFields lists what still blocks profile completion, in a stable order
// suitable for prompting the user.
func missingFields(p *models.UserProfile) []string {
	missing := []string{}
	if p.Name == "" {
		missing = append(missing, "name")
	}
	if p.GPA == nil || *p.GPA <= 0 {
		missing = append(missing, "gpa")
	}
	if p.BudgetPerYear == nil || *p.BudgetPerYear <= 0 {
		missing = append(missing, "budgetPerYear")
	}
	if len(p.PreferredCountries) == 0 {
		missing = append(missing, "preferredCountries")
	}
	return missing
}
