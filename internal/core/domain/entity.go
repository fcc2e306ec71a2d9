package domain

import "time"

// EntityRole scopes a transaction link to how the counterparty participated.
type EntityRole string

const (
	RoleClient   EntityRole = "client"
	RoleBank     EntityRole = "bank"
	RolePayee    EntityRole = "payee"
	RoleSupplier EntityRole = "supplier"
)

// Valid reports whether the role is one of the known values.
func (r EntityRole) Valid() bool {
	switch r {
	case RoleClient, RoleBank, RolePayee, RoleSupplier:
		return true
	default:
		return false
	}
}

// Entity is a counterparty: a client, supplier, payee, or bank.
type Entity struct {
	EntityID string `json:"entityID"` // Primary Key (e.g., UUID)
	Name     string `json:"name"`
	Type     string `json:"type"` // client, supplier, bank, ...
	AuditFields
}

// EntityLink ties a transaction to a counterparty in a given role. Deleting a
// transaction cascades to its links.
type EntityLink struct {
	TransactionID string     `json:"transactionID"`
	EntityID      string     `json:"entityID"`
	Role          EntityRole `json:"role"`
}

// MovementSide distinguishes receivable from payable activity in entity
// movement rows.
type MovementSide string

const (
	SideDebtor   MovementSide = "debtor"
	SideCreditor MovementSide = "creditor"
)

// EntityMovement is one day's receivable or payable delta for an entity, the
// input row of the aging engine. Positive deltas increase the outstanding
// balance, negative deltas are settlements or reversals.
type EntityMovement struct {
	MovementID string       `json:"movementID"` // Source transaction ID
	Date       time.Time    `json:"date"`
	Side       MovementSide `json:"side"`
	EntityID   string       `json:"entityID"` // Empty when the transaction has no link
	EntityName string       `json:"entityName"`
	Delta      int64        `json:"delta"`
	CreatedAt  time.Time    `json:"createdAt"`
}
