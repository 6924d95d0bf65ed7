package service

import (
	"fmt"
	"strings"

	"github.com/shipwise/shipwise/internal/domain/calcmethod"
	"github.com/shipwise/shipwise/internal/logger"
	"github.com/shipwise/shipwise/internal/types"
	"github.com/shopspring/decimal"
)

// ValidationService checks the structural integrity of user-authored fee
// specifications. All entry points are pure: violations come back as data and
// are never raised as errors, so a form can annotate every offending field.
type ValidationService interface {
	// ValidateMethod runs the full submission pass over a method input and
	// accumulates every violation at error severity.
	ValidateMethod(input calcmethod.MethodInput) types.Violations

	// ValidateRanges runs the full submission pass over a tier schedule.
	ValidateRanges(ranges []calcmethod.TierRangeInput, dimension types.CalculationType) types.Violations

	// ValidateRangeField runs the live pass after a single field edit: only
	// the edited range and its immediate neighbor are re-checked, at warning
	// severity.
	ValidateRangeField(ranges []calcmethod.TierRangeInput, index int, field types.RangeField, dimension types.CalculationType) types.Violations

	// ValidateAmountField checks the single numeric field of a non-tiered
	// variant (fixed amount or percentage rate).
	ValidateAmountField(raw string, field string, mode types.ValidationMode) types.Violations
}

type validationService struct {
	logger *logger.Logger
}

func NewValidationService(logger *logger.Logger) ValidationService {
	return &validationService{logger: logger}
}

// parsedRange is a tier row after numeric interpretation. A nil bound means
// the raw field was empty; ok flags say whether a non-empty field parsed.
type parsedRange struct {
	min, max, value       *decimal.Decimal
	minOK, maxOK, valueOK bool
	maxEmpty              bool
}

func parseField(raw string) (*decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, false
	}
	return &d, true
}

func parseRange(in calcmethod.TierRangeInput) parsedRange {
	var p parsedRange
	p.min, p.minOK = parseField(in.Min)
	p.value, p.valueOK = parseField(in.Value)
	p.maxEmpty = strings.TrimSpace(in.Max) == ""
	if !p.maxEmpty {
		p.max, p.maxOK = parseField(in.Max)
	}
	return p
}

func rangeField(index int, field types.RangeField) string {
	return fmt.Sprintf("ranges[%d].%s", index, field)
}

// firstMin is the lower bound the first range must start at: 1 for integer
// dimensions, 0 otherwise.
func firstMin(dimension types.CalculationType) decimal.Decimal {
	if dimension.RequiresInteger() {
		return decimal.NewFromInt(1)
	}
	return decimal.Zero
}

// expectedNextMin is the only legal min for the range following one that ends
// at prevMax: prevMax+1 on integer dimensions, prevMax itself on continuous
// ones. Both the gap and the overlap checks compare against this boundary;
// they stay separate violations for user clarity.
func expectedNextMin(prevMax decimal.Decimal, dimension types.CalculationType) decimal.Decimal {
	if dimension.RequiresInteger() {
		return prevMax.Add(decimal.NewFromInt(1))
	}
	return prevMax
}

func (s *validationService) ValidateMethod(input calcmethod.MethodInput) types.Violations {
	switch input.Type {
	case types.CALCULATION_TYPE_FREE, types.CALCULATION_TYPE_ITEM, types.CALCULATION_TYPE_CUMUL:
		return nil
	case types.CALCULATION_TYPE_FIXED:
		return s.ValidateAmountField(input.Amount, "amount", types.VALIDATION_MODE_SUBMISSION)
	case types.CALCULATION_TYPE_PERCENTAGE:
		return s.ValidateAmountField(input.Rate, "rate", types.VALIDATION_MODE_SUBMISSION)
	}
	return s.ValidateRanges(input.Ranges, input.Type)
}

func (s *validationService) ValidateRanges(ranges []calcmethod.TierRangeInput, dimension types.CalculationType) types.Violations {
	severity := types.VALIDATION_MODE_SUBMISSION.Severity()
	var violations types.Violations
	add := func(field, code string) {
		violations = append(violations, types.Violation{Field: field, Code: code, Severity: severity})
	}

	if len(ranges) == 0 {
		add("ranges", types.MSG_RANGE_REQUIRED)
		return violations
	}

	last := len(ranges) - 1
	parsed := make([]parsedRange, len(ranges))
	for i, in := range ranges {
		parsed[i] = parseRange(in)

		if !parsed[i].minOK {
			add(rangeField(i, types.RANGE_FIELD_MIN), types.MSG_NUMBER_INVALID)
		}
		if !parsed[i].valueOK {
			add(rangeField(i, types.RANGE_FIELD_VALUE), types.MSG_NUMBER_INVALID)
		}
		if !parsed[i].maxEmpty && !parsed[i].maxOK {
			add(rangeField(i, types.RANGE_FIELD_MAX), types.MSG_NUMBER_INVALID)
		}
	}

	// A missing max on a non-terminal range is always an error, never
	// defaulted; the terminal range must be the open-ended one.
	for i := 0; i < last; i++ {
		if parsed[i].maxEmpty {
			add(rangeField(i, types.RANGE_FIELD_MAX), types.MSG_MAX_REQUIRED)
		}
	}
	if !parsed[last].maxEmpty {
		add(rangeField(last, types.RANGE_FIELD_MAX), types.MSG_LAST_OPEN_ENDED)
	}

	// Duplicate (min, max) pairs are flagged regardless of everything else.
	boundsKnown := func(p parsedRange) bool {
		return p.minOK && (p.maxEmpty || p.maxOK)
	}
	for i := range parsed {
		if !boundsKnown(parsed[i]) {
			continue
		}
		for j := 0; j < i; j++ {
			if !boundsKnown(parsed[j]) {
				continue
			}
			if sameBounds(parsed[j], parsed[i]) {
				add(rangeField(i, types.RANGE_FIELD_MIN), types.MSG_DUPLICATE_BOUNDS)
				break
			}
		}
	}

	for i := range parsed {
		violations = append(violations, s.checkRange(parsed, i, dimension, severity)...)
	}

	return violations
}

// checkRange runs the per-range predicates that have their inputs parsed;
// a field that failed to parse was already flagged and is skipped here.
func (s *validationService) checkRange(parsed []parsedRange, i int, dimension types.CalculationType, severity types.Severity) types.Violations {
	var violations types.Violations
	add := func(field, code string) {
		violations = append(violations, types.Violation{Field: field, Code: code, Severity: severity})
	}
	p := parsed[i]

	if p.minOK {
		if i == 0 && !p.min.Equal(firstMin(dimension)) {
			add(rangeField(i, types.RANGE_FIELD_MIN), types.MSG_MIN_BOUND)
		}
		if dimension.RequiresInteger() && !p.min.IsInteger() {
			add(rangeField(i, types.RANGE_FIELD_MIN), types.MSG_INTEGER_REQUIRED)
		}
	}

	if p.maxOK {
		if dimension.RequiresInteger() && !p.max.IsInteger() {
			add(rangeField(i, types.RANGE_FIELD_MAX), types.MSG_INTEGER_REQUIRED)
		}
		if p.minOK && !p.max.GreaterThan(*p.min) {
			add(rangeField(i, types.RANGE_FIELD_MAX), types.MSG_MAX_NOT_GREATER)
		}
	}

	// Continuity is directional: each range is only compared against the one
	// before it. A gap and an overlap are the two sides of the same boundary.
	if i > 0 && p.minOK && parsed[i-1].maxOK {
		expected := expectedNextMin(*parsed[i-1].max, dimension)
		if p.min.GreaterThan(expected) {
			add(rangeField(i, types.RANGE_FIELD_MIN), types.MSG_GAP_WITH_PREVIOUS)
		} else if p.min.LessThan(expected) {
			add(rangeField(i, types.RANGE_FIELD_MIN), types.MSG_OVERLAP_WITH_PREVIOUS)
		}
	}

	if p.valueOK && p.value.IsNegative() {
		add(rangeField(i, types.RANGE_FIELD_VALUE), types.MSG_VALUE_NEGATIVE)
	}

	return violations
}

// ValidateRangeField gives real-time feedback after a single field edit
// without freezing an in-progress entry: only checks relevant to the edited
// field run, at warning severity. Editing a max also re-checks the following
// range's min, since moving one boundary can invalidate the neighbor. The
// rest of the chain is deliberately not re-checked here; the submission pass
// remains authoritative for the whole schedule.
func (s *validationService) ValidateRangeField(ranges []calcmethod.TierRangeInput, index int, field types.RangeField, dimension types.CalculationType) types.Violations {
	if index < 0 || index >= len(ranges) {
		return nil
	}

	severity := types.VALIDATION_MODE_LIVE.Severity()
	var violations types.Violations
	add := func(f, code string) {
		violations = append(violations, types.Violation{Field: f, Code: code, Severity: severity})
	}

	last := len(ranges) - 1
	cur := parseRange(ranges[index])

	switch field {
	case types.RANGE_FIELD_MIN:
		if !cur.minOK {
			add(rangeField(index, field), types.MSG_NUMBER_INVALID)
			return violations
		}
		if dimension.RequiresInteger() && !cur.min.IsInteger() {
			add(rangeField(index, field), types.MSG_INTEGER_REQUIRED)
		}
		if index == 0 {
			if !cur.min.Equal(firstMin(dimension)) {
				add(rangeField(index, field), types.MSG_MIN_BOUND)
			}
		} else {
			prev := parseRange(ranges[index-1])
			if prev.maxOK {
				expected := expectedNextMin(*prev.max, dimension)
				if cur.min.GreaterThan(expected) {
					add(rangeField(index, field), types.MSG_GAP_WITH_PREVIOUS)
				} else if cur.min.LessThan(expected) {
					add(rangeField(index, field), types.MSG_OVERLAP_WITH_PREVIOUS)
				}
			}
		}

	case types.RANGE_FIELD_MAX:
		if cur.maxEmpty {
			if index != last {
				add(rangeField(index, field), types.MSG_MAX_REQUIRED)
			}
			return violations
		}
		if !cur.maxOK {
			add(rangeField(index, field), types.MSG_NUMBER_INVALID)
			return violations
		}
		if dimension.RequiresInteger() && !cur.max.IsInteger() {
			add(rangeField(index, field), types.MSG_INTEGER_REQUIRED)
		}
		if cur.minOK && !cur.max.GreaterThan(*cur.min) {
			add(rangeField(index, field), types.MSG_MAX_NOT_GREATER)
		}
		// Re-check the immediate neighbor's min against the new boundary.
		if index < last {
			next := parseRange(ranges[index+1])
			if next.minOK {
				expected := expectedNextMin(*cur.max, dimension)
				if next.min.GreaterThan(expected) {
					add(rangeField(index+1, types.RANGE_FIELD_MIN), types.MSG_GAP_WITH_PREVIOUS)
				} else if next.min.LessThan(expected) {
					add(rangeField(index+1, types.RANGE_FIELD_MIN), types.MSG_OVERLAP_WITH_PREVIOUS)
				}
			}
		}

	case types.RANGE_FIELD_VALUE:
		if !cur.valueOK {
			add(rangeField(index, field), types.MSG_NUMBER_INVALID)
			return violations
		}
		if cur.value.IsNegative() {
			add(rangeField(index, field), types.MSG_VALUE_NEGATIVE)
		}
	}

	return violations
}

func (s *validationService) ValidateAmountField(raw string, field string, mode types.ValidationMode) types.Violations {
	if _, ok := parseField(raw); ok {
		return nil
	}

	code := types.MSG_NUMBER_INVALID
	switch field {
	case "amount":
		code = types.MSG_AMOUNT_INVALID
	case "rate":
		code = types.MSG_RATE_INVALID
	}
	return types.Violations{{Field: field, Code: code, Severity: mode.Severity()}}
}

func sameBounds(a, b parsedRange) bool {
	if !a.min.Equal(*b.min) {
		return false
	}
	aOpen := a.max == nil
	bOpen := b.max == nil
	if aOpen != bOpen {
		return false
	}
	if aOpen {
		return true
	}
	return a.max.Equal(*b.max)
}
