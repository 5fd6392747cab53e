package models

import "fmt"

// TobaccoType is the leaf category of an auction lot.
type TobaccoType string

const (
	TobaccoFlueCured   TobaccoType = "flue_cured"
	TobaccoBurley      TobaccoType = "burley"
	TobaccoDarkFired   TobaccoType = "dark_fired"
	TobaccoOriental    TobaccoType = "oriental"
	TobaccoConnecticut TobaccoType = "connecticut"
	TobaccoOther       TobaccoType = "other"
)

var validTobaccoTypes = []TobaccoType{
	TobaccoFlueCured,
	TobaccoBurley,
	TobaccoDarkFired,
	TobaccoOriental,
	TobaccoConnecticut,
	TobaccoOther,
}

// IsValid reports whether the value is a known TobaccoType.
func (t TobaccoType) IsValid() bool {
	for _, candidate := range validTobaccoTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTobaccoType converts raw input into a TobaccoType.
func ParseTobaccoType(value string) (TobaccoType, error) {
	for _, candidate := range validTobaccoTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid tobacco type %q", value)
}

// Role is the marketplace role of a user.
type Role string

const (
	RoleBuyer       Role = "buyer"
	RoleTrader      Role = "trader"
	RoleTIMBOfficer Role = "timb_officer"
	RoleAdmin       Role = "admin"
	RoleOther       Role = "other"
)

var validRoles = []Role{
	RoleBuyer,
	RoleTrader,
	RoleTIMBOfficer,
	RoleAdmin,
	RoleOther,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRole converts raw input into a Role. Unknown values map to RoleOther.
func ParseRole(value string) Role {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate
		}
	}
	return RoleOther
}
