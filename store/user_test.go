package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertUserRefreshesProfile(t *testing.T) {
	setupDB(t)

	_, err := UpsertUser("alice", "Alice", "alice@example.com")
	require.NoError(t, err)
	_, err = UpsertUser("alice", "Alice B.", "alice.b@example.com")
	require.NoError(t, err)

	user, err := GetUser("alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", user.Name)
	assert.Equal(t, "alice.b@example.com", user.Email)
}

func TestUpsertUsersWithoutCredentials(t *testing.T) {
	setupDB(t)

	// Socket registrations carry no username or password; several such
	// identities must coexist without colliding on the empty columns.
	for _, id := range []string{"alice", "bob", "carol"} {
		_, err := UpsertUser(id, "", "")
		require.NoError(t, err)
	}

	user, err := GetUser("bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", user.ID)
	assert.Empty(t, user.Username)
}

func TestBareReRegistrationKeepsProfile(t *testing.T) {
	setupDB(t)

	_, err := UpsertUser("alice", "Alice", "alice@example.com")
	require.NoError(t, err)

	// Reconnecting clients often re-register with the id alone.
	user, err := UpsertUser("alice", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestGetUserUnknown(t *testing.T) {
	setupDB(t)

	_, err := GetUser("nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSearchUsersMatchesIdNameAndEmail(t *testing.T) {
	setupDB(t)
	_, err := UpsertUser("alice", "Alice Anders", "alice@example.com")
	require.NoError(t, err)
	_, err = UpsertUser("bob", "Bob Alison", "bob@corp.test")
	require.NoError(t, err)
	_, err = UpsertUser("carol", "Carol", "carol@corp.test")
	require.NoError(t, err)

	// Case-insensitive, matches name substrings too.
	users, err := SearchUsers("ALI", 0)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].ID)
	assert.Equal(t, "bob", users[1].ID)

	users, err = SearchUsers("corp.test", 0)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	users, err = SearchUsers("ali", 1)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
