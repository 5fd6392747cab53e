// Package access maps marketplace roles to the actions they are offered.
package access

import (
	"sort"
	"time"

	"tobacco-auction/internal/models"
)

// Capability is one action a role may be offered.
type Capability string

const (
	CapViewAuctions     Capability = "view_auctions"
	CapPlaceBid         Capability = "place_bid"
	CapCreateAuction    Capability = "create_auction"
	CapManageOwnAuction Capability = "manage_own_auction"
	CapReviewAuction    Capability = "review_auction"
	CapViewMyBids       Capability = "view_my_bids"
	CapViewMyListings   Capability = "view_my_listings"
	CapViewOrders       Capability = "view_orders"
	CapPendingClearance Capability = "pending_clearance"
	CapViewReports      Capability = "view_reports"
	CapManageUsers      Capability = "manage_users"
	CapManageSettings   Capability = "manage_settings"
)

// CapabilitySet is an unordered set of capabilities.
type CapabilitySet map[Capability]struct{}

func newSet(caps ...Capability) CapabilitySet {
	s := make(CapabilitySet, len(caps))
	for _, c := range caps {
		s[c] = struct{}{}
	}
	return s
}

// Has reports whether c is in the set.
func (s CapabilitySet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

// List returns the capabilities sorted by name.
func (s CapabilitySet) List() []Capability {
	out := make([]Capability, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

var roleCapabilities = map[models.Role]CapabilitySet{
	models.RoleBuyer:       newSet(CapViewAuctions, CapPlaceBid, CapViewMyBids, CapViewOrders),
	models.RoleTrader:      newSet(CapViewAuctions, CapCreateAuction, CapManageOwnAuction, CapViewMyListings, CapViewOrders),
	models.RoleTIMBOfficer: newSet(CapViewAuctions, CapReviewAuction, CapPendingClearance, CapViewReports),
	models.RoleAdmin:       newSet(CapViewAuctions, CapManageUsers, CapViewReports, CapManageSettings),
	models.RoleOther:       newSet(CapViewAuctions),
}

// Capabilities returns a copy of the capability set for role.
// Unknown roles get the RoleOther set.
func Capabilities(role models.Role) CapabilitySet {
	src, ok := roleCapabilities[role]
	if !ok {
		src = roleCapabilities[models.RoleOther]
	}
	out := make(CapabilitySet, len(src))
	for c := range src {
		out[c] = struct{}{}
	}
	return out
}

// Can reports whether role holds capability c.
func Can(role models.Role, c Capability) bool {
	src, ok := roleCapabilities[role]
	if !ok {
		src = roleCapabilities[models.RoleOther]
	}
	return src.Has(c)
}

// Action is a control offered on a single auction.
type Action string

const (
	ActionViewDetails Action = "view_details"
	ActionPlaceBid    Action = "place_bid"
	ActionManage      Action = "manage"
	ActionReview      Action = "review"
)

// AuctionActions lists the controls offered to user on auction at now.
func AuctionActions(user models.User, auction models.Auction, now time.Time) []Action {
	actions := []Action{ActionViewDetails}
	if Can(user.Role, CapPlaceBid) && !auction.IsEnded(now) {
		actions = append(actions, ActionPlaceBid)
	}
	if Can(user.Role, CapManageOwnAuction) && auction.Seller.ID == user.ID {
		actions = append(actions, ActionManage)
	}
	if Can(user.Role, CapReviewAuction) {
		actions = append(actions, ActionReview)
	}
	return actions
}
