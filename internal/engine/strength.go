// internal/engine/strength.go
package engine

import "advisor-workers/internal/models"

// Section weights sum to 100.
const (
	academicsMax   = 30
	examsMax       = 25
	sopMax         = 20
	documentsMax   = 15
	preferencesMax = 10
)

// EvaluateProfileStrength computes the point-weighted profile strength
// summary. Pure: the locked-university flag is supplied by the caller.
func EvaluateProfileStrength(profile *models.UserProfile, hasLockedUniversity bool) models.ProfileStrengthResult {
	sections := []models.SectionScore{
		scoreAcademics(profile),
		scoreExams(profile),
		scoreSOP(profile),
		scoreDocuments(profile),
		scorePreferences(profile),
	}

	total := 0
	for _, s := range sections {
		total += s.Score
	}

	// Up to three next actions, taken in section order so the most heavily
	// weighted gaps surface first.
	var nextActions []string
	for _, s := range sections {
		for _, step := range s.NextSteps {
			if len(nextActions) < 3 {
				nextActions = append(nextActions, step)
			}
		}
	}

	return models.ProfileStrengthResult{
		TotalScore:          total,
		Sections:            sections,
		NextActions:         nextActions,
		HasLockedUniversity: hasLockedUniversity,
	}
}

func scoreAcademics(p *models.UserProfile) models.SectionScore {
	score := 0
	var steps []string

	if p.GPA != nil {
		score += 15
	} else {
		steps = append(steps, "Add your GPA so universities can be matched to your academic record")
	}
	if p.Degree != "" || p.FieldOfStudy != "" {
		score += 10
	} else {
		steps = append(steps, "Add your degree or field of study")
	}
	if p.GraduationYear != nil {
		score += 5
	} else {
		steps = append(steps, "Add your graduation year")
	}

	return sectionScore("Academics", score, academicsMax, steps)
}

func scoreExams(p *models.UserProfile) models.SectionScore {
	score := 0
	var steps []string

	switch p.IELTSStatus {
	case models.StatusCompleted:
		score += 12
	case models.StatusInProgress:
		score += 6
		steps = append(steps, "Finish your English proficiency test (IELTS/TOEFL)")
	default:
		steps = append(steps, "Start preparing for an English proficiency test (IELTS/TOEFL)")
	}

	switch p.GREGMATStatus {
	case models.StatusCompleted:
		score += 13
	case models.StatusInProgress:
		score += 6
		steps = append(steps, "Finish your GRE/GMAT")
	default:
		steps = append(steps, "Start preparing for the GRE/GMAT")
	}

	return sectionScore("Exams", score, examsMax, steps)
}

func scoreSOP(p *models.UserProfile) models.SectionScore {
	score := 0
	var steps []string

	switch p.SOPStatus {
	case models.StatusCompleted:
		score = 20
	case models.StatusInProgress:
		score = 10
		steps = append(steps, "Finalize your statement of purpose")
	default:
		steps = append(steps, "Start drafting your statement of purpose")
	}

	return sectionScore("SOP", score, sopMax, steps)
}

func scoreDocuments(p *models.UserProfile) models.SectionScore {
	score := 0
	var steps []string

	if p.FundingPlan != "" {
		score = 15
	} else {
		steps = append(steps, "Document how you plan to fund your studies")
	}

	return sectionScore("Documents", score, documentsMax, steps)
}

func scorePreferences(p *models.UserProfile) models.SectionScore {
	score := 0
	var steps []string

	if len(p.PreferredCountries) > 0 {
		score += 4
	} else {
		steps = append(steps, "Pick the countries you want to study in")
	}
	if p.BudgetPerYear != nil {
		score += 3
	} else {
		steps = append(steps, "Set your yearly budget")
	}
	if p.FieldOfStudy != "" {
		score += 3
	} else {
		steps = append(steps, "Tell us which field you want to study")
	}

	return sectionScore("Preferences", score, preferencesMax, steps)
}

func sectionScore(name string, score, max int, steps []string) models.SectionScore {
	return models.SectionScore{
		Name:      name,
		Score:     score,
		MaxScore:  max,
		Status:    sectionStatus(score, max),
		NextSteps: steps,
	}
}

// OverallStrengthStatus grades a total score on the same scale sections use.
func OverallStrengthStatus(total int) models.SectionStatus {
	return sectionStatus(total, 100)
}

func sectionStatus(score, max int) models.SectionStatus {
	if score == 0 {
		return models.SectionMissing
	}
	pct := float64(score) / float64(max)
	switch {
	case pct >= 0.8:
		return models.SectionStrong
	case pct >= 0.4:
		return models.SectionAverage
	default:
		return models.SectionWeak
	}
}
