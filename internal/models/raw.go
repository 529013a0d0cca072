package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// The Flex types absorb the loose typing of upstream snapshot payloads. Each
// accepts a JSON number, a quoted value, or null; anything unparseable
// degrades to the type's zero value instead of failing the whole document.
// Decoding a snapshot therefore only errors when the payload itself is not
// valid JSON or not list-shaped, which is a contract violation rather than a
// data-quality condition.

// FlexAmount is a monetary value that unmarshals from a number, a formatted
// string, or null.
type FlexAmount struct {
	decimal.Decimal
}

// UnmarshalJSON implements loose decoding for FlexAmount.
func (f *FlexAmount) UnmarshalJSON(data []byte) error {
	f.Decimal = CoerceAmount(unquote(data))
	return nil
}

// FlexRate is a percentage-point rate that unmarshals from a number, a
// string (optionally percent-suffixed), or null.
type FlexRate float64

// UnmarshalJSON implements loose decoding for FlexRate.
func (f *FlexRate) UnmarshalJSON(data []byte) error {
	*f = FlexRate(CoerceRate(unquote(data)))
	return nil
}

// FlexString unmarshals from a string, a number, a boolean, or null,
// rendering non-string scalars as their literal text.
type FlexString string

// UnmarshalJSON implements loose decoding for FlexString.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	*f = FlexString(strings.TrimSpace(unquote(data)))
	return nil
}

// FlexBool unmarshals from a boolean, a truthy string, a number, or null.
type FlexBool bool

// UnmarshalJSON implements loose decoding for FlexBool.
func (f *FlexBool) UnmarshalJSON(data []byte) error {
	*f = FlexBool(CoerceBool(unquote(data)))
	return nil
}

// FlexDate unmarshals a date from any of the supported filing formats.
type FlexDate time.Time

// UnmarshalJSON implements loose decoding for FlexDate.
func (f *FlexDate) UnmarshalJSON(data []byte) error {
	*f = FlexDate(CoerceDate(unquote(data)))
	return nil
}

// Time returns the underlying time value.
func (f FlexDate) Time() time.Time {
	return time.Time(f)
}

// unquote strips surrounding JSON quotes and maps null to the empty string.
// Raw tokens (numbers, booleans) pass through as their literal text.
func unquote(data []byte) string {
	s := string(data)
	if s == "null" {
		return ""
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		var out string
		if err := json.Unmarshal(data, &out); err == nil {
			return out
		}
		return s[1 : len(s)-1]
	}
	return s
}

// RawHolding mirrors one snapshot row as delivered by upstream extraction,
// before normalization. All fields are optional and loosely typed.
type RawHolding struct {
	CompanyName     FlexString `json:"company_name"`
	InvestmentType  FlexString `json:"investment_type"`
	Industry        FlexString `json:"industry"`
	FairValue       FlexAmount `json:"fair_value"`
	Cost            FlexAmount `json:"cost"`
	AmortizedCost   FlexAmount `json:"amortized_cost"`
	PrincipalAmount FlexAmount `json:"principal_amount"`
	Spread          FlexRate   `json:"spread"`
	FloorRate       FlexRate   `json:"floor_rate"`
	PIK             FlexBool   `json:"pik"`
	PIKRate         FlexRate   `json:"pik_rate"`
	MaturityDate    FlexDate   `json:"maturity_date"`
}

// Normalize converts the raw row into a canonical Holding. Missing and
// malformed fields arrive as zero values; the holding still participates in
// downstream computation with degraded fields rather than being dropped.
func (r *RawHolding) Normalize() *Holding {
	return &Holding{
		CompanyName:     string(r.CompanyName),
		InvestmentType:  string(r.InvestmentType),
		Industry:        string(r.Industry),
		FairValue:       r.FairValue.Decimal,
		Cost:            r.Cost.Decimal,
		AmortizedCost:   r.AmortizedCost.Decimal,
		PrincipalAmount: r.PrincipalAmount.Decimal,
		Spread:          float64(r.Spread),
		FloorRate:       float64(r.FloorRate),
		PIK:             bool(r.PIK),
		PIKRate:         float64(r.PIKRate),
		MaturityDate:    r.MaturityDate.Time(),
	}
}
