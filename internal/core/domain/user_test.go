package domain

import "testing"

func TestRoleCodeFor(t *testing.T) {
	cases := []struct {
		role int
		want string
	}{
		{RoleAdmin, RoleCodeAdmin},
		{RoleDoctor, RoleCodeDoctor},
		{RoleUser, RoleCodeUser},
		{-1, RoleCodeUser},
		{42, RoleCodeUser},
	}
	for _, tc := range cases {
		if got := RoleCodeFor(tc.role); got != tc.want {
			t.Errorf("RoleCodeFor(%d) = %q, want %q", tc.role, got, tc.want)
		}
	}
}

func TestUserEnabled(t *testing.T) {
	u := &User{Status: StatusEnabled}
	if !u.Enabled() {
		t.Fatalf("enabled user reported disabled")
	}
	u.Status = StatusDisabled
	if u.Enabled() {
		t.Fatalf("disabled user reported enabled")
	}
}
