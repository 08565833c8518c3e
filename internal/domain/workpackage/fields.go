package workpackage

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/workplan/backend/internal/domain/shared"
)

// DateLayout is the wire format for schedule dates
const DateLayout = "2006-01-02"

// Editable field names, as they appear in patch payloads and CSV headers
const (
	FieldName               = "name"
	FieldDescription        = "description"
	FieldBudget             = "budget"
	FieldActualCost         = "actual_cost"
	FieldEarnedValue        = "earned_value"
	FieldPercentComplete    = "percent_complete"
	FieldStartDate          = "start_date"
	FieldEndDate            = "end_date"
	FieldResponsibleManager = "responsible_manager"
)

// Field validation errors shared between inline edits and full updates
var (
	ErrDateOrder    = shared.NewDomainError("DATE_ORDER", "End date cannot be before start date")
	ErrUnknownField = shared.NewDomainError("UNKNOWN_FIELD", "Unknown editable field")
)

// PendingEdit carries in-flight values from the same edit session that
// have not reached the record yet. Date-order checks must compare against
// these, not the stored values, or a two-field reschedule would be
// rejected halfway through.
type PendingEdit struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// ValidateField checks a single raw string edit against one field of an
// existing record without applying it. The empty error means the value
// may be committed as-is.
func ValidateField(field, value string, record *WorkPackage) error {
	return ValidateFieldWithPending(field, value, record, PendingEdit{})
}

// ValidateFieldWithPending is ValidateField with companion in-flight
// values taken into account for cross-field checks
func ValidateFieldWithPending(field, value string, record *WorkPackage, pending PendingEdit) error {
	switch field {
	case FieldName:
		return validateName(value)
	case FieldDescription:
		return nil
	case FieldBudget, FieldActualCost, FieldEarnedValue:
		amount, err := decimal.NewFromString(value)
		if err != nil {
			return shared.NewDomainError("INVALID_AMOUNT", "Field "+field+" must be a decimal number")
		}
		return validateAmount(field, amount)
	case FieldPercentComplete:
		percent, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return shared.NewDomainError("INVALID_PERCENT", "Percent complete must be a number")
		}
		if percent < 0 || percent > 100 {
			return shared.NewDomainError("OUT_OF_RANGE", "Percent complete must be between 0 and 100")
		}
		return nil
	case FieldStartDate:
		start, err := time.Parse(DateLayout, value)
		if err != nil {
			return shared.NewDomainError("INVALID_DATE", "Start date must be in YYYY-MM-DD format")
		}
		end := record.EndDate
		if pending.EndDate != nil {
			end = *pending.EndDate
		}
		return validateDateOrder(start, end)
	case FieldEndDate:
		end, err := time.Parse(DateLayout, value)
		if err != nil {
			return shared.NewDomainError("INVALID_DATE", "End date must be in YYYY-MM-DD format")
		}
		start := record.StartDate
		if pending.StartDate != nil {
			start = *pending.StartDate
		}
		return validateDateOrder(start, end)
	case FieldResponsibleManager:
		return validateManager(value)
	default:
		return ErrUnknownField
	}
}
