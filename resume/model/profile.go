package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CandidateProfile is the payload assembled by the wizard and submitted on
// generate. Field order mirrors the wizard steps.
type CandidateProfile struct {
	Name            string            `json:"name" validate:"required"`
	Email           string            `json:"email" validate:"omitempty,email"`
	Phone           string            `json:"phone"`
	Location        string            `json:"location"`
	Summary         string            `json:"summary"`
	Education       []EducationEntry  `json:"education" validate:"dive"`
	Experience      []ExperienceEntry `json:"experience" validate:"dive"`
	KeySkills       []string          `json:"key_skills"`
	TechnicalSkills []string          `json:"technical_skills"`
	Certifications  []string          `json:"certifications"`
	Awards          []string          `json:"awards"`
}

// EducationEntry is one education record, ordered as entered.
type EducationEntry struct {
	Institution string `json:"institution" validate:"required"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

// ExperienceEntry is one work history record with nested bullet points.
type ExperienceEntry struct {
	Company  string   `json:"company" validate:"required"`
	Role     string   `json:"role"`
	Location string   `json:"location"`
	Start    string   `json:"start"`
	End      string   `json:"end"`
	Bullets  []string `json:"bullets"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate enforces required fields before a document can be rendered.
func (p CandidateProfile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(p.Email) == "" && strings.TrimSpace(p.Phone) == "" {
		return errors.New("email or phone is required")
	}
	if err := validate.Struct(p); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return fmt.Errorf("invalid field %s", fieldName(fieldErrs[0]))
		}
		return err
	}
	return nil
}

// ContactLine formats the contact details shown under the name.
func (p CandidateProfile) ContactLine() string {
	parts := make([]string, 0, 3)
	for _, v := range []string{p.Email, p.Phone, p.Location} {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " | ")
}

func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		ns = ns[idx+1:]
	}
	return ns
}
