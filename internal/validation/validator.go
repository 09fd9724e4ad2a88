package validation

import (
	"strings"

	"learnbyte/internal/domain"
	"learnbyte/internal/dto"
)

const (
	maxSourceTextLen = 200000
	maxQuestionCount = 50
	maxWordBudget    = 2000
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerateRequest validates the quiz generation request
func (v *Validator) ValidateGenerateRequest(req *dto.GenerateAssessmentRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if strings.TrimSpace(req.Text) == "" {
		errs = append(errs, domain.NewMissingFieldError("text"))
	} else if len(req.Text) > maxSourceTextLen {
		errs = append(errs, domain.NewOutOfRangeError("text", len(req.Text), 1, maxSourceTextLen))
	}

	if req.NumQuestions <= 0 || req.NumQuestions > maxQuestionCount {
		errs = append(errs, domain.NewOutOfRangeError("numQuestions", req.NumQuestions, 1, maxQuestionCount))
	}

	return errs
}

// ValidateSummarizeRequest validates the transcript condensation request
func (v *Validator) ValidateSummarizeRequest(req *dto.SummarizeRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if strings.TrimSpace(req.Transcript) == "" {
		errs = append(errs, domain.NewMissingFieldError("transcript"))
	} else if len(req.Transcript) > maxSourceTextLen {
		errs = append(errs, domain.NewOutOfRangeError("transcript", len(req.Transcript), 1, maxSourceTextLen))
	}

	if req.MaxWords <= 0 || req.MaxWords > maxWordBudget {
		errs = append(errs, domain.NewOutOfRangeError("maxWords", req.MaxWords, 1, maxWordBudget))
	}

	return errs
}

// ValidateSubmitRequest validates the grading request
func (v *Validator) ValidateSubmitRequest(req *dto.SubmitRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if len(req.Questions) == 0 {
		errs = append(errs, domain.NewMissingFieldError("questions"))
	}
	if req.Answers == nil {
		errs = append(errs, domain.NewMissingFieldError("answers"))
	}

	return errs
}
