package domain

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/conorfennell/recall/internal/sm2"
	"github.com/conorfennell/recall/internal/validation"
)

var (
	validatorOnce sync.Once
	validatorInst *validation.Validator
	validatorErr  error
)

func entityValidator() (*validation.Validator, error) {
	validatorOnce.Do(func() {
		validatorInst, validatorErr = validation.New("json")
		if validatorErr != nil {
			return
		}
		validatorInst.RegisterStructValidation(validateSchedule, sm2.State{})
		validatorErr = validatorInst.RegisterValidation("notblank", notBlank, "{0} must not be blank")
	})
	return validatorInst, validatorErr
}

// Validate checks a Card or Deck before it is stored or scheduled.
// Failed rules are reported as a *validation.Error.
func Validate(v any) error {
	val, err := entityValidator()
	if err != nil {
		return fmt.Errorf("failed to build validator: %w", err)
	}
	return val.Struct(v)
}

// notBlank rejects text made only of whitespace.
func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// validateSchedule rejects scheduling states no sequence of reviews can produce.
func validateSchedule(sl validator.StructLevel) {
	s := sl.Current().Interface().(sm2.State)

	if s.Interval < 0 {
		sl.ReportError(s.Interval, "interval", "Interval", "gte", "0")
	}
	if !(s.EaseFactor >= sm2.MinEaseFactor) {
		sl.ReportError(s.EaseFactor, "ease_factor", "EaseFactor", "gte", fmt.Sprint(sm2.MinEaseFactor))
	}
	if s.Repetitions < 0 {
		sl.ReportError(s.Repetitions, "repetitions", "Repetitions", "gte", "0")
	}

	switch {
	case s.LastReview == nil && s.NextReview != nil:
		sl.ReportError(s.LastReview, "last_review", "LastReview", "required_with", "next_review")
	case s.LastReview != nil && s.NextReview == nil:
		sl.ReportError(s.NextReview, "next_review", "NextReview", "required_with", "last_review")
	case s.LastReview != nil && s.NextReview.Before(*s.LastReview):
		sl.ReportError(*s.NextReview, "next_review", "NextReview", "gtefield", "last_review")
	case s.LastReview != nil && s.Interval < 1:
		sl.ReportError(s.Interval, "interval", "Interval", "gte", "1")
	}
}
