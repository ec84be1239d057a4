// Package address holds the postal address value shared by members and deliveries.
package address

import "strings"

// Address is an immutable postal address. The zero value means "no address".
type Address struct {
	City    string
	Street  string
	Zipcode string
}

// New trims the parts and builds an Address.
func New(city, street, zipcode string) Address {
	return Address{
		City:    strings.TrimSpace(city),
		Street:  strings.TrimSpace(street),
		Zipcode: strings.TrimSpace(zipcode),
	}
}

// IsZero reports whether no part of the address is set.
func (a Address) IsZero() bool {
	return a.City == "" && a.Street == "" && a.Zipcode == ""
}

// View is the JSON shape of an address used by the HTTP mappers.
type View struct {
	City    string `json:"city"`
	Street  string `json:"street"`
	Zipcode string `json:"zipcode"`
}

// ToView returns nil for an empty address so it serializes as JSON null.
func ToView(a Address) *View {
	if a.IsZero() {
		return nil
	}
	return &View{City: a.City, Street: a.Street, Zipcode: a.Zipcode}
}

// FromView converts an optional transport address.
func FromView(v *View) Address {
	if v == nil {
		return Address{}
	}
	return New(v.City, v.Street, v.Zipcode)
}
