package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

var validate = validator.New()

// Validate checks field constraints and the cross-section rules that struct
// tags cannot express.
func (m *Model) Validate() error {
	var problems []string
	if err := validate.Struct(m); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		for _, fe := range verrs {
			problems = append(problems, formatFieldError(fe))
		}
	}

	if m.Balance.TargetGroupSize > m.Grouping.MaxGroupSize {
		problems = append(problems, fmt.Sprintf("balance.targetgroupsize (%d) must not exceed grouping.maxgroupsize (%d)",
			m.Balance.TargetGroupSize, m.Grouping.MaxGroupSize))
	}
	for _, name := range []string{"individual", "co-assembly"} {
		if _, ok := m.Resources.Profiles[name]; !ok {
			problems = append(problems, fmt.Sprintf("resources.profiles is missing the %q profile", name))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// formatFieldError renders a single validation error as "section.field ...".
func formatFieldError(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:] // drop the "Model." prefix
	}
	field := strings.ToLower(ns)

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, e.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "gtefield":
		return fmt.Sprintf("%s must not be less than %s", field, strings.ToLower(e.Param()))
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, e.Tag())
	}
}
