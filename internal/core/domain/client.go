package domain

import (
	"errors"
	"time"
)

// ClientStatus is the workflow stage of a client case.
type ClientStatus string

const (
	StatusIntake      ClientStatus = "INTAKE"
	StatusPreparation ClientStatus = "PREPARATION"
	StatusReview      ClientStatus = "REVIEW"
	StatusFiled       ClientStatus = "FILED"
	StatusInvoiced    ClientStatus = "INVOICED"
	StatusCompleted   ClientStatus = "COMPLETED"
)

// statusProgress maps each workflow stage to its fixed completion
// percentage. Progress is derived state: it is overwritten on every status
// change and never accepted as input.
var statusProgress = map[ClientStatus]int{
	StatusIntake:      20,
	StatusPreparation: 40,
	StatusReview:      60,
	StatusFiled:       80,
	StatusInvoiced:    90,
	StatusCompleted:   100,
}

// Valid reports whether s is one of the six defined stages.
func (s ClientStatus) Valid() bool {
	_, ok := statusProgress[s]
	return ok
}

// Progress returns the fixed percentage for the stage, or 0 for anything
// outside the defined vocabulary. Note that a freshly created case carries
// progress 0 until its first explicit status update, even though its status
// is already INTAKE.
func (s ClientStatus) Progress() int {
	return statusProgress[s]
}

// EntityType classifies the taxpayer entity on a case.
type EntityType string

const (
	EntityIndividual  EntityType = "INDIVIDUAL"
	EntityLLC         EntityType = "LLC"
	EntitySCorp       EntityType = "S_CORP"
	EntityCCorp       EntityType = "C_CORP"
	EntityPartnership EntityType = "PARTNERSHIP"
	EntityTrust       EntityType = "TRUST"
	EntityEstate      EntityType = "ESTATE"
	EntityOther       EntityType = "OTHER"
)

var entityTypes = map[EntityType]struct{}{
	EntityIndividual:  {},
	EntityLLC:         {},
	EntitySCorp:       {},
	EntityCCorp:       {},
	EntityPartnership: {},
	EntityTrust:       {},
	EntityEstate:      {},
	EntityOther:       {},
}

// Valid reports whether t is a defined entity type.
func (t EntityType) Valid() bool {
	_, ok := entityTypes[t]
	return ok
}

var ErrClientNotFound = errors.New("client not found")
var ErrDuplicateEmail = errors.New("email already in use")
var ErrInvalidStatus = errors.New("invalid status value")

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// Client is the aggregate root for a taxpayer engagement. Tasks, documents
// and messages all trace their access decisions back to UserID and
// AssignedCPAID on this record.
type Client struct {
	ID                 string       `json:"id" bson:"_id,omitempty"`
	UserID             string       `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Name               string       `json:"name" bson:"name"`
	Email              string       `json:"email" bson:"email"`
	Phone              string       `json:"phone,omitempty" bson:"phone,omitempty"`
	BusinessName       string       `json:"business_name,omitempty" bson:"business_name,omitempty"`
	EntityType         EntityType   `json:"entity_type" bson:"entity_type"`
	TaxYear            int          `json:"tax_year" bson:"tax_year"`
	Status             ClientStatus `json:"status" bson:"status"`
	ProgressPercentage int          `json:"progress_percentage" bson:"progress_percentage"`
	AssignedCPAID      string       `json:"assigned_cpa_id,omitempty" bson:"assigned_cpa_id,omitempty"`
	CreatedAt          time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at" bson:"updated_at"`
}

// ClientAccess is the minimal projection fetched for authorization checks,
// before the full record (or any child resource) is loaded.
type ClientAccess struct {
	UserID        string `bson:"user_id,omitempty"`
	AssignedCPAID string `bson:"assigned_cpa_id,omitempty"`
}
