package domain

// ChartOfAccounts holds the account hierarchy of one EconomicGroup (1:1).
type ChartOfAccounts struct {
	ChartID  string `json:"chartID"`
	GroupID  string `json:"groupID"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
	AuditFields
}

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// AccountNature classifies balance-sheet accounts. Required for ASSET and
// LIABILITY accounts.
type AccountNature string

const (
	NatureCurrent    AccountNature = "CURRENT"
	NatureNonCurrent AccountNature = "NON_CURRENT"
)

// AuxiliaryType names the kind of auxiliary reference an account demands on
// its entry lines when RequiresAuxiliary is set.
type AuxiliaryType string

const (
	AuxiliaryCustomer AuxiliaryType = "CUSTOMER"
	AuxiliarySupplier AuxiliaryType = "SUPPLIER"
	AuxiliaryEmployee AuxiliaryType = "EMPLOYEE"
	AuxiliaryOther    AuxiliaryType = "OTHER"
)

// Account is a node in a chart's self-referential hierarchy. Only postable
// leaf accounts may carry entry lines.
type Account struct {
	AccountID         string         `json:"accountID"`
	ChartID           string         `json:"chartID"`
	Code              string         `json:"code"` // Digits and dots, unique within the chart
	Name              string         `json:"name"`
	AccountType       AccountType    `json:"accountType"`
	Level             int            `json:"level"` // parent.Level+1, or 1 at the root
	ParentAccountID   *string        `json:"parentAccountID"`
	Postable          bool           `json:"postable"`
	RequiresAuxiliary bool           `json:"requiresAuxiliary"`
	AuxiliaryType     *AuxiliaryType `json:"auxiliaryType"`
	CurrencyCode      string         `json:"currencyCode"`
	Nature            *AccountNature `json:"nature"`
	IfrsCategory      string         `json:"ifrsCategory"`
	ValuationMethod   string         `json:"valuationMethod"`
	IsActive          bool           `json:"isActive"`
	AuditFields
}

// AccountNode is an Account plus its resolved children, used by the chart
// tree endpoint.
type AccountNode struct {
	Account
	Children []*AccountNode `json:"children"`
}
