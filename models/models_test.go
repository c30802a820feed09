package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
	}{
		{"CLIENTE", RoleCliente},
		{"ADMIN", RoleAdmin},
		{"ADMIN_DISCOTECA", RoleAdminDiscoteca},
	}
	for _, c := range cases {
		got, err := ParseRole(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got)
	}
}

func TestParseRoleRejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "cliente", "ROOT", "ADMIN "} {
		_, err := ParseRole(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleCliente.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleAdminDiscoteca.Valid())
	assert.False(t, Role("SUPERUSER").Valid())
	assert.False(t, Role("").Valid())
}
