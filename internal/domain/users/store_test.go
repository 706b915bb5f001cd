package users_test

import (
	"testing"

	"artfeed-backend/internal/domain/users"
	"artfeed-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonical(t *testing.T) {
	assert.Equal(t, "alice", users.Canonical("  Alice "))
	assert.Equal(t, "alice", users.Canonical("ALICE"))
	assert.Equal(t, "", users.Canonical("   "))
}

func TestCreateCanonicalizesUsername(t *testing.T) {
	store := users.NewStore(testutil.DB(t))

	user, err := store.Create("  Alice ", "alice@example.com", "password1", "", "painter")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	// Lookup under any casing resolves.
	loaded, err := store.ByUsername("ALICE")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loaded.ID)
	assert.Equal(t, "painter", loaded.Bio)
}

func TestCreateRejectsDuplicates(t *testing.T) {
	store := users.NewStore(testutil.DB(t))

	_, err := store.Create("alice", "alice@example.com", "password1", "", "")
	require.NoError(t, err)

	// Same username under different casing collides.
	_, err = store.Create("Alice", "other@example.com", "password1", "", "")
	assert.ErrorIs(t, err, users.ErrAlreadyExists)

	// Same email, different username also collides.
	_, err = store.Create("bob", "alice@example.com", "password1", "", "")
	assert.ErrorIs(t, err, users.ErrAlreadyExists)
}

func TestCreateRejectsEmptyUsername(t *testing.T) {
	store := users.NewStore(testutil.DB(t))
	_, err := store.Create("   ", "x@example.com", "password1", "", "")
	assert.ErrorIs(t, err, users.ErrInvalidUsername)
}

func TestVerify(t *testing.T) {
	store := users.NewStore(testutil.DB(t))
	_, err := store.Create("alice", "alice@example.com", "password1", "", "")
	require.NoError(t, err)

	user, err := store.Verify("Alice", "password1")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = store.Verify("alice", "wrong")
	assert.ErrorIs(t, err, users.ErrInvalidCredentials)
	_, err = store.Verify("nobody", "password1")
	assert.ErrorIs(t, err, users.ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	store := users.NewStore(testutil.DB(t))
	_, err := store.Create("alice", "alice@example.com", "password1", "", "old bio")
	require.NoError(t, err)

	require.NoError(t, store.UpdateProfile("alice", "new@example.com", "123", "new bio", ""))

	user, err := store.ByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, "123", user.Phone)
	assert.Equal(t, "new bio", user.Bio)

	// Password unchanged without a new one supplied.
	_, err = store.Verify("alice", "password1")
	assert.NoError(t, err)

	require.NoError(t, store.UpdateProfile("alice", "new@example.com", "123", "new bio", "password2"))
	_, err = store.Verify("alice", "password1")
	assert.ErrorIs(t, err, users.ErrInvalidCredentials)
	_, err = store.Verify("alice", "password2")
	assert.NoError(t, err)

	assert.ErrorIs(t, store.UpdateProfile("ghost", "g@example.com", "", "", ""), users.ErrUserNotFound)
}

func TestBiosFor(t *testing.T) {
	store := users.NewStore(testutil.DB(t))
	_, err := store.Create("alice", "alice@example.com", "password1", "", "paints rivers")
	require.NoError(t, err)
	_, err = store.Create("bob", "bob@example.com", "password1", "", "")
	require.NoError(t, err)

	bios, err := store.BiosFor([]string{"Alice", "bob", "ghost"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"alice": "paints rivers", "bob": ""}, bios)
}
