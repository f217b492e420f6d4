package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_IsActivated(t *testing.T) {
	empty := ""
	token := "abc"

	assert.True(t, (&User{}).IsActivated())
	assert.True(t, (&User{ActivationToken: &empty}).IsActivated())
	assert.False(t, (&User{ActivationToken: &token}).IsActivated())
}

func TestUser_ClearActivation(t *testing.T) {
	token := "abc"
	otp := 123456
	u := &User{ActivationToken: &token, OTP: &otp}

	u.ClearActivation()

	assert.True(t, u.IsActivated())
	assert.Nil(t, u.OTP)
}

func TestUser_RoleList(t *testing.T) {
	assert.Equal(t, []string{RoleUser}, (&User{}).RoleList())
	assert.Equal(t, []string{RoleAdmin, RoleUser}, (&User{Roles: []string{RoleAdmin, RoleAdmin}}).RoleList())
	assert.True(t, (&User{Roles: []string{RoleAdmin}}).HasRole(RoleUser))
	assert.False(t, (&User{}).HasRole(RoleAdmin))
}

func TestUser_FullName(t *testing.T) {
	assert.Equal(t, "Alice Liddell", (&User{Firstname: "Alice", Lastname: "Liddell"}).FullName())
	assert.Equal(t, "Alice", (&User{Firstname: "Alice"}).FullName())
}

func TestOwnerID(t *testing.T) {
	zero := uint(0)
	seven := uint(7)

	assert.Nil(t, (&Post{}).OwnerID())
	assert.Nil(t, (&Comment{UserID: &zero}).OwnerID())
	assert.Equal(t, uint(7), *(&Todoline{UserID: &seven}).OwnerID())
	assert.Equal(t, KindTodoline, (&Todoline{}).ResourceKind())
}
