package types

// Severity is a presentation concern: whether a violation blocks a save or is
// only advisory while the user is still typing. The predicates behind both
// are identical.
type Severity string

const (
	SEVERITY_WARNING Severity = "warning"
	SEVERITY_ERROR   Severity = "error"
)

// ValidationMode distinguishes the single-field live pass (field blur, never
// blocking) from the full-form submission pass (save, blocking).
type ValidationMode string

const (
	VALIDATION_MODE_LIVE       ValidationMode = "live"
	VALIDATION_MODE_SUBMISSION ValidationMode = "submission"
)

// Severity returns the severity violations carry in this mode.
func (m ValidationMode) Severity() Severity {
	if m == VALIDATION_MODE_SUBMISSION {
		return SEVERITY_ERROR
	}
	return SEVERITY_WARNING
}

// RangeField identifies which field of a tier range was edited.
type RangeField string

const (
	RANGE_FIELD_MIN   RangeField = "min"
	RANGE_FIELD_MAX   RangeField = "max"
	RANGE_FIELD_VALUE RangeField = "value"
)

// Violation is one validation failure keyed to a form field. Message keys are
// stable identifiers; localization is the caller's responsibility.
type Violation struct {
	Field    string   `json:"field"`
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
}

// Stable message keys for validation violations.
const (
	MSG_RANGE_REQUIRED        = "tier_range_required"
	MSG_NUMBER_INVALID        = "number_invalid"
	MSG_MAX_REQUIRED          = "tier_max_required"
	MSG_LAST_OPEN_ENDED       = "tier_last_must_be_open_ended"
	MSG_DUPLICATE_BOUNDS      = "tier_duplicate_bounds"
	MSG_MIN_BOUND             = "tier_min_bound"
	MSG_MAX_NOT_GREATER       = "tier_max_not_greater_than_min"
	MSG_INTEGER_REQUIRED      = "tier_integer_required"
	MSG_GAP_WITH_PREVIOUS     = "tier_gap_with_previous"
	MSG_OVERLAP_WITH_PREVIOUS = "tier_overlap_with_previous"
	MSG_VALUE_NEGATIVE        = "tier_value_negative"
	MSG_AMOUNT_INVALID        = "amount_invalid"
	MSG_RATE_INVALID          = "rate_invalid"
)

// Violations is an accumulated list of validation failures.
type Violations []Violation

// HasBlocking reports whether any violation carries error severity, i.e.
// whether a save must be refused.
func (v Violations) HasBlocking() bool {
	for _, violation := range v {
		if violation.Severity == SEVERITY_ERROR {
			return true
		}
	}
	return false
}

// ForField returns the violations annotated on a single field path.
func (v Violations) ForField(field string) Violations {
	var out Violations
	for _, violation := range v {
		if violation.Field == field {
			out = append(out, violation)
		}
	}
	return out
}
