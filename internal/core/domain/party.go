package domain

// PartyType distinguishes the two kinds of auxiliary parties a group keeps.
type PartyType string

const (
	PartyCustomer PartyType = "CUSTOMER"
	PartySupplier PartyType = "SUPPLIER"
)

// Party is a customer or supplier of an EconomicGroup. Customers and
// suppliers share the same shape and rules; the type field keeps their
// namespaces (and name uniqueness) separate.
type Party struct {
	PartyID   string    `json:"partyID"`
	GroupID   string    `json:"groupID"`
	PartyType PartyType `json:"partyType"`
	Name      string    `json:"name"`
	Rut       string    `json:"rut"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	IsActive  bool      `json:"isActive"`
	AuditFields
}
