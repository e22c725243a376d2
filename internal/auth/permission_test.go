package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCan(t *testing.T) {
	tests := []struct {
		perm    Permission
		team    bool
		manager bool
		athlete bool
	}{
		{PermManageTeam, true, false, false},
		{PermManageStaff, true, false, false},
		{PermManageRoster, true, true, false},
		{PermManagePayments, true, true, false},
		{PermManageEvents, true, true, false},
		{PermViewTeam, true, true, true},
		{PermConfirmPresence, true, true, true},
		{PermSettlePayment, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.perm.String(), func(t *testing.T) {
			assert.Equal(t, tt.team, Can(RoleTeam, tt.perm), "TEAM")
			assert.Equal(t, tt.manager, Can(RoleManager, tt.perm), "MANAGER")
			assert.Equal(t, tt.athlete, Can(RoleAthlete, tt.perm), "ATHLETE")
		})
	}
}

func TestCan_UnknownRole(t *testing.T) {
	assert.False(t, Can(Role("ADMIN"), PermViewTeam))
	assert.False(t, Can(RoleTeam, Permission(0)))
}
