package auth

// Permission is a capability checked before a handler runs.
type Permission int

// Permissions.
const (
	PermManageTeam Permission = iota + 1
	PermManageStaff
	PermManageRoster
	PermManagePayments
	PermManageEvents
	PermViewTeam
	PermConfirmPresence
	PermSettlePayment
)

func (p Permission) String() string {
	switch p {
	case PermManageTeam:
		return "manage_team"
	case PermManageStaff:
		return "manage_staff"
	case PermManageRoster:
		return "manage_roster"
	case PermManagePayments:
		return "manage_payments"
	case PermManageEvents:
		return "manage_events"
	case PermViewTeam:
		return "view_team"
	case PermConfirmPresence:
		return "confirm_presence"
	case PermSettlePayment:
		return "settle_payment"
	default:
		return "unknown"
	}
}

var capabilities = map[Role]map[Permission]bool{
	RoleTeam: {
		PermManageTeam:      true,
		PermManageStaff:     true,
		PermManageRoster:    true,
		PermManagePayments:  true,
		PermManageEvents:    true,
		PermViewTeam:        true,
		PermConfirmPresence: true,
	},
	RoleManager: {
		PermManageRoster:    true,
		PermManagePayments:  true,
		PermManageEvents:    true,
		PermViewTeam:        true,
		PermConfirmPresence: true,
	},
	RoleAthlete: {
		PermViewTeam:        true,
		PermConfirmPresence: true,
		PermSettlePayment:   true,
	},
}

// Can reports whether role holds perm.
func Can(role Role, perm Permission) bool {
	return capabilities[role][perm]
}
