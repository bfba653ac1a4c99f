package access

// Action names a guarded operation of the core.
type Action string

const (
	CreateOrder        Action = "create_order"
	CreateOrderForUser Action = "create_order_for_other_user"
	ViewOwnOrders      Action = "view_own_orders"
	ViewAnyOrder       Action = "view_any_order"
	UpdateOwnOrder     Action = "update_own_order"
	UpdateAnyOrder     Action = "update_any_order"
	CancelOwnOrder     Action = "cancel_own_order"
	AdvanceOrder       Action = "advance_order"
	CancelAnyOrder     Action = "cancel_any_order"

	CombineOrders         Action = "combine_orders"
	DecombineShipment     Action = "decombine_shipment"
	ListCombinedShipments Action = "list_combined_shipments"
	ManageBranches        Action = "manage_branches"
	ViewBranches          Action = "view_branches"
	ManageFlights         Action = "manage_flights"
	ManageBags            Action = "manage_bags"
	ShelveOrder           Action = "shelve_order"
	RunReport             Action = "run_report"
	BlockUser             Action = "block_user"
	RunBlockedUsersReport Action = "run_blocked_users_report"
)

// capabilities holds the minimum role per action. Actions missing from the
// table are denied to everyone.
var capabilities = map[Action]Role{
	CreateOrder:        User,
	CreateOrderForUser: Admin,
	ViewOwnOrders:      User,
	ViewAnyOrder:       Admin,
	UpdateOwnOrder:     User,
	UpdateAnyOrder:     Admin,
	CancelOwnOrder:     User,
	AdvanceOrder:       Admin,
	CancelAnyOrder:     Admin,

	CombineOrders:         Admin,
	DecombineShipment:     Admin,
	ListCombinedShipments: Admin,
	ManageBranches:        Admin,
	ViewBranches:          User,
	ManageFlights:         Admin,
	ManageBags:            Admin,
	ShelveOrder:           Admin,
	RunReport:             Admin,

	BlockUser:             Super,
	RunBlockedUsersReport: Super,
}

// Actions lists every action known to the capability table.
func Actions() []Action {
	out := make([]Action, 0, len(capabilities))
	for a := range capabilities {
		out = append(out, a)
	}
	return out
}

// MinimumRole returns the lowest role allowed to perform a.
func MinimumRole(a Action) (Role, bool) {
	r, ok := capabilities[a]
	return r, ok
}
