// Package phone validates phone numbers against a single configured
// region's numbering plan. Malformed numbers are rejected at write time;
// stored numbers are normalized to E.164 so uniqueness comparisons hold.
package phone

import (
	"fmt"

	"github.com/nyaruka/phonenumbers"
)

type Validator struct {
	region string
}

func NewValidator(region string) *Validator {
	return &Validator{region: region}
}

func (v *Validator) Region() string { return v.region }

// Normalize parses raw against the configured region and returns the E.164
// form. An empty input is an error; callers decide whether the field is
// optional before calling.
func (v *Validator) Normalize(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("empty phone number")
	}
	num, err := phonenumbers.Parse(raw, v.region)
	if err != nil {
		return "", fmt.Errorf("parse phone number: %w", err)
	}
	if !phonenumbers.IsValidNumberForRegion(num, v.region) {
		return "", fmt.Errorf("not a valid %s phone number", v.region)
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
