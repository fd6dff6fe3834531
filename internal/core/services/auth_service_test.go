package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgvote/orgvote/internal/core/domain"
	"github.com/orgvote/orgvote/internal/core/ports"
)

func newAuthFixture() (*AuthService, *fakeUserRepo) {
	users := newFakeUserRepo()
	return NewAuthService(users, newFakeOrgRepo(), []byte("test-secret")), users
}

func TestRegisterVoterAndLogin(t *testing.T) {
	auth, users := newAuthFixture()
	ctx := context.Background()

	voter, err := auth.RegisterVoter(ctx, ports.RegisterVoterInput{
		Email:        "voter@acme.test",
		Password:     "hunter22",
		Name:         "V One",
		Organization: "Acme",
	})
	require.NoError(t, err)
	assert.False(t, voter.IsVerified, "voters start unverified")
	assert.NotEqual(t, "hunter22", voter.PasswordHash)

	// Unverified voters cannot log in yet.
	_, _, err = auth.Login(ctx, "voter@acme.test", "hunter22", domain.RoleVoter, "Acme")
	assert.ErrorIs(t, err, domain.ErrVoterNotVerified)

	require.NoError(t, users.SetVoterVerified(ctx, voter.ID, "Acme", true))

	token, user, err := auth.Login(ctx, "voter@acme.test", "hunter22", domain.RoleVoter, "Acme")
	require.NoError(t, err)
	assert.Equal(t, voter.ID, user.ID)

	identity, err := auth.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, voter.ID, identity.UserID)
	assert.Equal(t, domain.RoleVoter, identity.Role)
	assert.Equal(t, "Acme", identity.Organization)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	auth, users := newAuthFixture()
	ctx := context.Background()

	voter, err := auth.RegisterVoter(ctx, ports.RegisterVoterInput{
		Email:        "voter@acme.test",
		Password:     "correct-horse",
		Name:         "V One",
		Organization: "Acme",
	})
	require.NoError(t, err)
	require.NoError(t, users.SetVoterVerified(ctx, voter.ID, "Acme", true))

	_, _, err = auth.Login(ctx, "voter@acme.test", "wrong", domain.RoleVoter, "Acme")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// Wrong organization is indistinguishable from bad credentials.
	_, _, err = auth.Login(ctx, "voter@acme.test", "correct-horse", domain.RoleVoter, "Globex")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// A voter cannot log in through the admin door.
	_, _, err = auth.Login(ctx, "voter@acme.test", "correct-horse", domain.RoleAdmin, "")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = auth.Login(ctx, "nobody@acme.test", "x", domain.RoleVoter, "Acme")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRegisterAdminValidation(t *testing.T) {
	auth, _ := newAuthFixture()
	ctx := context.Background()

	input := ports.RegisterAdminInput{
		Name:             "Admin",
		Age:              30,
		OrgType:          domain.OrgTypeSchool,
		OrganizationName: "Acme",
		Phone:            "555-0100",
		NationalID:       "AAA-111",
		Email:            "admin@acme.test",
		Password:         "secret99",
	}

	admin, err := auth.RegisterAdmin(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.True(t, admin.IsVerified)
	assert.Equal(t, "Acme", admin.Organization)

	dup := input
	dup.Email = "other@acme.test"
	dup.NationalID = "BBB-222"
	_, err = auth.RegisterAdmin(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrOrganizationTaken)

	bad := input
	bad.OrganizationName = "Globex"
	bad.OrgType = "club"
	_, err = auth.RegisterAdmin(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidOrgType)

	missing := input
	missing.OrganizationName = "Globex"
	missing.Email = ""
	_, err = auth.RegisterAdmin(ctx, missing)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	auth, _ := newAuthFixture()

	_, err := auth.VerifyToken("not-a-jwt")
	assert.Error(t, err)

	// A token signed with a different secret must not verify.
	other := NewAuthService(newFakeUserRepo(), newFakeOrgRepo(), []byte("other-secret"))
	token, err := other.generateAccessToken(&domain.User{Email: "x@y.test"})
	require.NoError(t, err)

	_, err = auth.VerifyToken(token)
	assert.Error(t, err)
}
