package access_test

import (
	"testing"

	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	t.Run("should parse known roles", func(t *testing.T) {
		for input, want := range map[string]access.Role{
			"user":   access.User,
			"Admin":  access.Admin,
			" SUPER": access.Super,
		} {
			got, err := access.ParseRole(input)

			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("should reject unknown roles", func(t *testing.T) {
		for _, input := range []string{"", "unknown", "root"} {
			_, err := access.ParseRole(input)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestAuthorize_UserIsForbiddenFromEveryAdminAction(t *testing.T) {
	for _, action := range access.Actions() {
		minRole, ok := access.MinimumRole(action)
		require.True(t, ok)

		if minRole > access.User {
			assert.False(t, access.Authorize(access.User, action), "user must not perform %s", action)
		} else {
			assert.True(t, access.Authorize(access.User, action), "user may perform %s", action)
		}
	}
}

func TestAuthorize_SuperOnlyActions(t *testing.T) {
	superOnly := []access.Action{access.BlockUser, access.RunBlockedUsersReport}

	for _, action := range superOnly {
		assert.False(t, access.Authorize(access.User, action))
		assert.False(t, access.Authorize(access.Admin, action))
		assert.True(t, access.Authorize(access.Super, action))
	}
}

func TestAuthorize_RolesAreCumulative(t *testing.T) {
	for _, action := range access.Actions() {
		if access.Authorize(access.Admin, action) {
			assert.True(t, access.Authorize(access.Super, action), "super must inherit %s", action)
		}
		if access.Authorize(access.User, action) {
			assert.True(t, access.Authorize(access.Admin, action), "admin must inherit %s", action)
		}
	}
}

func TestAuthorize_DeniesUnknown(t *testing.T) {
	assert.False(t, access.Authorize(access.Super, access.Action("drop_database")))
	assert.False(t, access.Authorize(access.UnknownRole, access.CreateOrder))
	assert.False(t, access.Authorize(access.Role(42), access.CreateOrder))
}

func TestRequire(t *testing.T) {
	user, err := access.NewActor(kernel.NewUUID(), access.User)
	require.NoError(t, err)

	t.Run("should return forbidden error naming role and action", func(t *testing.T) {
		err := access.Require(user, access.CombineOrders)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrForbidden)
		var forbidden *errs.ForbiddenError
		require.ErrorAs(t, err, &forbidden)
		assert.Equal(t, "user", forbidden.Role)
		assert.Equal(t, string(access.CombineOrders), forbidden.Action)
	})

	t.Run("should pass permitted action", func(t *testing.T) {
		require.NoError(t, access.Require(user, access.CreateOrder))
	})
}

func TestNewActor(t *testing.T) {
	id := kernel.NewUUID()

	a, err := access.NewActor(id, access.Admin)

	require.NoError(t, err)
	assert.True(t, a.Owns(id))
	assert.False(t, a.Owns(kernel.NewUUID()))
	assert.True(t, a.IsStaff())

	_, err = access.NewActor(kernel.UUID{}, access.Admin)
	require.Error(t, err)

	_, err = access.NewActor(id, access.UnknownRole)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
