package event

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DomainEvent is implemented by everything published to the event stream.
type DomainEvent interface {
	EventID() string
	EventType() string
	AggregateID() string
	OccurredAt() time.Time
}

// BaseEvent provides the DomainEvent implementation shared by all events.
type BaseEvent struct {
	ID         string    `json:"event_id"`
	Type       string    `json:"event_type"`
	Aggregate  string    `json:"aggregate_id"`
	OccurredTS time.Time `json:"occurred_at"`
}

// NewBaseEvent stamps an event with a fresh UUID and the current time.
func NewBaseEvent(eventType string, aggregateID int64) BaseEvent {
	return BaseEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		Aggregate:  strconv.FormatInt(aggregateID, 10),
		OccurredTS: time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() string       { return e.ID }
func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) AggregateID() string   { return e.Aggregate }
func (e BaseEvent) OccurredAt() time.Time { return e.OccurredTS }

// CustomerRegistered is raised when a new customer profile is created.
type CustomerRegistered struct {
	BaseEvent
	CustomerID    int64           `json:"customer_id"`
	ApprovedLimit decimal.Decimal `json:"approved_limit"`
}

func NewCustomerRegistered(customerID int64, approvedLimit decimal.Decimal) CustomerRegistered {
	return CustomerRegistered{
		BaseEvent:     NewBaseEvent("credit.customer.registered", customerID),
		CustomerID:    customerID,
		ApprovedLimit: approvedLimit,
	}
}

// LoanApproved is raised after an approved loan and its debt increment have
// been committed.
type LoanApproved struct {
	BaseEvent
	LoanID             int64           `json:"loan_id"`
	CustomerID         int64           `json:"customer_id"`
	Amount             decimal.Decimal `json:"amount"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	TenureMonths       int             `json:"tenure_months"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
}

func NewLoanApproved(loanID, customerID int64, amount, rate decimal.Decimal, tenureMonths int, installment decimal.Decimal) LoanApproved {
	return LoanApproved{
		BaseEvent:          NewBaseEvent("credit.loan.approved", loanID),
		LoanID:             loanID,
		CustomerID:         customerID,
		Amount:             amount,
		InterestRate:       rate,
		TenureMonths:       tenureMonths,
		MonthlyInstallment: installment,
	}
}

// LoanRejected is raised when a creation request is turned down. No state
// changes accompany it.
type LoanRejected struct {
	BaseEvent
	CustomerID int64           `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	Score      int             `json:"score"`
	Reason     string          `json:"reason"`
}

func NewLoanRejected(customerID int64, amount decimal.Decimal, score int, reason string) LoanRejected {
	return LoanRejected{
		BaseEvent:  NewBaseEvent("credit.loan.rejected", customerID),
		CustomerID: customerID,
		Amount:     amount,
		Score:      score,
		Reason:     reason,
	}
}
