package apperrors

import "net/http"

// Rule codes carried by BusinessRuleError. Clients branch on these rather
// than parsing messages.
const (
	RuleDuplicateCode             = "DUPLICATE_CODE"
	RuleDuplicateRut              = "DUPLICATE_RUT"
	RuleDuplicateName             = "DUPLICATE_NAME"
	RuleDuplicatePeriod           = "DUPLICATE_PERIOD"
	RuleDuplicateRate             = "DUPLICATE_RATE"
	RuleOverlappingPeriod         = "OVERLAPPING_PERIOD"
	RuleInvalidLevel              = "INVALID_LEVEL"
	RuleInvalidRootLevel          = "INVALID_ROOT_LEVEL"
	RuleInvalidDateRange          = "INVALID_DATE_RANGE"
	RulePeriodNotClosable         = "PERIOD_NOT_CLOSABLE"
	RulePeriodClosed              = "PERIOD_CLOSED"
	RuleAlreadyClosed             = "ALREADY_CLOSED"
	RuleAlreadyOpen               = "ALREADY_OPEN"
	RuleInvalidTargetCurrency     = "INVALID_TARGET_CURRENCY"
	RuleSameCurrency              = "SAME_CURRENCY"
	RuleFutureDate                = "FUTURE_DATE"
	RuleInvalidRate               = "INVALID_RATE"
	RuleInvalidRut                = "INVALID_RUT"
	RuleInvalidCurrencyForCountry = "INVALID_CURRENCY_FOR_COUNTRY"
	RuleInvalidParentAccount      = "INVALID_PARENT_ACCOUNT"
	RulePostableWithSubaccounts   = "POSTABLE_WITH_SUBACCOUNTS"
	RuleNotPostable               = "NOT_POSTABLE"
	RuleAuxiliaryTypeRequired     = "AUXILIARY_TYPE_REQUIRED"
	RuleNatureRequired            = "NATURE_REQUIRED"
	RuleHasSubaccounts            = "HAS_SUBACCOUNTS"
	RuleHasJournalEntries         = "HAS_JOURNAL_ENTRIES"
	RuleChartHasAccounts          = "CHART_HAS_ACCOUNTS"
	RuleUnbalancedEntry           = "UNBALANCED_ENTRY"
	RuleInvalidStatusTransition   = "INVALID_STATUS_TRANSITION"
	RuleApprovalRequired          = "APPROVAL_REQUIRED"
)

// BusinessRuleError is a named domain rule violation, rendered as HTTP 422
// with a machine-readable rule code and optional structured details.
type BusinessRuleError struct {
	Rule    string
	Message string
	Details map[string]any
}

func (e *BusinessRuleError) Error() string {
	return e.Message
}

// NewBusinessRuleError creates a BusinessRuleError for the given rule code.
func NewBusinessRuleError(rule, message string) *BusinessRuleError {
	return &BusinessRuleError{Rule: rule, Message: message}
}

// WithDetail attaches a detail key/value and returns the error for chaining.
func (e *BusinessRuleError) WithDetail(key string, value any) *BusinessRuleError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// StatusCode reports the HTTP status for a business rule violation.
func (e *BusinessRuleError) StatusCode() int {
	return http.StatusUnprocessableEntity
}
