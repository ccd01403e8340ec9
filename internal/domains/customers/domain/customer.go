package domain

import "github.com/shopspring/decimal"

// Gender of a generated customer, carried for display only.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// PsychoType tags the shopping temperament of a customer. The checkout logic
// ignores it; the console shows it for flavor.
type PsychoType string

const (
	PsychoTypeImpulsive PsychoType = "impulsive"
	PsychoTypeThrifty   PsychoType = "thrifty"
	PsychoTypeBrowser   PsychoType = "browser"
	PsychoTypeLoyal     PsychoType = "loyal"
)

// Customer is an immutable snapshot of a shopper at the register. The
// checkout result carries the remaining cash instead of mutating this value.
type Customer struct {
	ID     int64
	Name   string
	Age    int
	Gender Gender
	Type   PsychoType
	Cash   decimal.Decimal
}
