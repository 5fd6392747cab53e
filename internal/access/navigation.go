package access

import "tobacco-auction/internal/models"

// NavItem is one entry of the role-specific navigation.
type NavItem struct {
	Path  string `json:"path"`
	Label string `json:"label"`
}

var commonNav = []NavItem{
	{Path: "/", Label: "Dashboard"},
	{Path: "/auctions", Label: "Auctions"},
}

var roleNav = map[models.Role][]NavItem{
	models.RoleAdmin: {
		{Path: "/users", Label: "Users"},
		{Path: "/reports", Label: "Reports"},
		{Path: "/settings", Label: "Settings"},
	},
	models.RoleTrader: {
		{Path: "/my-listings", Label: "My Listings"},
		{Path: "/orders", Label: "Orders"},
	},
	models.RoleBuyer: {
		{Path: "/my-bids", Label: "My Bids"},
		{Path: "/orders", Label: "Orders"},
	},
	models.RoleTIMBOfficer: {
		{Path: "/pending-clearance", Label: "Pending Clearance"},
		{Path: "/reports", Label: "Reports"},
	},
}

// NavItems returns the navigation entries for role, common entries first.
func NavItems(role models.Role) []NavItem {
	items := append([]NavItem(nil), commonNav...)
	return append(items, roleNav[role]...)
}
