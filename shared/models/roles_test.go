package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRoles(t *testing.T) {
	assert.Equal(t, []string{"user"}, NormalizeRoles(nil))
	assert.Equal(t, []string{"user"}, NormalizeRoles([]string{""}))
	assert.Equal(t, []string{"user", "admin"}, NormalizeRoles([]string{"user", "admin", "user", ""}))
	assert.Equal(t, []string{"admin", "user"}, NormalizeRoles([]string{"admin", "user"}))
}

func TestHasRole(t *testing.T) {
	assert.True(t, HasRole([]string{"user", "admin"}, RoleAdmin))
	assert.False(t, HasRole([]string{"user"}, RoleAdmin))
	assert.False(t, HasRole(nil, RoleUser))
}

func TestAvatarFor(t *testing.T) {
	assert.Equal(t, "A", AvatarFor("alice"))
	assert.Equal(t, "B", AvatarFor("Bob"))
	assert.Equal(t, "7", AvatarFor("7seven"))
	assert.Equal(t, "Я", AvatarFor("яна"))
	assert.Equal(t, "", AvatarFor(""))
}
