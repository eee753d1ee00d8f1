package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/mddstore/backend/internal/domain/shared"
)

var (
	mobileRe = regexp.MustCompile(`^[6-9]\d{9}$`)
	pinRe    = regexp.MustCompile(`^\d{6}$`)
)

// Address is a value object representing a shipping or billing address.
// It is immutable once constructed; NewAddress performs all field validation.
type Address struct {
	name       string
	phone      string
	line1      string
	line2      string
	city       string
	state      string
	postalCode string
}

// NewAddress creates a validated Address. Name, phone, line1, city, state and
// a 6-digit postal code are required; line2 is optional. Phone must be a
// national mobile number (10 digits starting 6-9).
func NewAddress(name, phone, line1, line2, city, state, postalCode string) (Address, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	line1 = strings.TrimSpace(line1)
	line2 = strings.TrimSpace(line2)
	city = strings.TrimSpace(city)
	state = strings.TrimSpace(state)
	postalCode = strings.TrimSpace(postalCode)

	if name == "" {
		return Address{}, shared.NewDomainError("VALIDATION_ERROR", "Address name is required")
	}
	if len(name) > 200 {
		return Address{}, shared.NewDomainError("VALIDATION_ERROR", "Address name cannot exceed 200 characters")
	}
	if !mobileRe.MatchString(phone) {
		return Address{}, shared.NewDomainError("VALIDATION_ERROR", "Phone must be a valid 10-digit mobile number")
	}
	if line1 == "" {
		return Address{}, shared.NewDomainError("VALIDATION_ERROR", "Address line is required")
	}
	if len(line1) > 500 || len(line2) > 500 {
		return Address{}, shared.NewDomainError("VALIDATION_ERROR", "Address line cannot exceed 500 characters")
	}
	if city == "" {
		return Address{}, shared.NewDomainError("VALIDATION_ERROR", "City is required")
	}
	if state == "" {
		return Address{}, shared.NewDomainError("VALIDATION_ERROR", "State is required")
	}
	if !pinRe.MatchString(postalCode) {
		return Address{}, shared.NewDomainError("VALIDATION_ERROR", "Postal code must be 6 digits")
	}

	return Address{
		name:       name,
		phone:      phone,
		line1:      line1,
		line2:      line2,
		city:       city,
		state:      state,
		postalCode: postalCode,
	}, nil
}

// EmptyAddress returns an empty address (for optional address fields)
func EmptyAddress() Address {
	return Address{}
}

// Name returns the recipient name
func (a Address) Name() string { return a.name }

// Phone returns the contact phone number
func (a Address) Phone() string { return a.phone }

// Line1 returns the first address line
func (a Address) Line1() string { return a.line1 }

// Line2 returns the optional second address line
func (a Address) Line2() string { return a.line2 }

// City returns the city
func (a Address) City() string { return a.city }

// State returns the state
func (a Address) State() string { return a.state }

// PostalCode returns the 6-digit postal code
func (a Address) PostalCode() string { return a.postalCode }

// IsEmpty returns true if the address has no fields set
func (a Address) IsEmpty() bool {
	return a == Address{}
}

// Equals returns true if both addresses are equal
func (a Address) Equals(other Address) bool {
	return a == other
}

// String returns the formatted single-line address used in receipts and emails
func (a Address) String() string {
	if a.IsEmpty() {
		return ""
	}
	parts := []string{a.name, a.line1}
	if a.line2 != "" {
		parts = append(parts, a.line2)
	}
	parts = append(parts, a.city, a.state, a.postalCode)
	return strings.Join(parts, ", ")
}

// addressJSON is used for JSON marshaling and database storage
type addressJSON struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
}

// MarshalJSON implements json.Marshaler
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(addressJSON{
		Name:       a.name,
		Phone:      a.phone,
		Line1:      a.line1,
		Line2:      a.line2,
		City:       a.city,
		State:      a.state,
		PostalCode: a.postalCode,
	})
}

// UnmarshalJSON implements json.Unmarshaler, delegating to NewAddress so the
// same validation applies on deserialization paths (API binding, DB scan).
func (a *Address) UnmarshalJSON(data []byte) error {
	var v addressJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v == (addressJSON{}) {
		*a = EmptyAddress()
		return nil
	}
	addr, err := NewAddress(v.Name, v.Phone, v.Line1, v.Line2, v.City, v.State, v.PostalCode)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// Value implements driver.Valuer; the address is stored as a JSON column
func (a Address) Value() (driver.Value, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for database retrieval
func (a *Address) Scan(value any) error {
	if value == nil {
		*a = EmptyAddress()
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into Address", value)
	}

	if len(data) == 0 || string(data) == "null" {
		*a = EmptyAddress()
		return nil
	}
	return json.Unmarshal(data, a)
}
