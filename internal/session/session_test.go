package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/dealflow/internal/models"
	"github.com/thenoetrevino/dealflow/internal/types"
)

func testDirectory() *StaticDirectory {
	return NewStaticDirectory([]models.User{
		{ID: "admin123", Name: "Admin User", Role: models.RoleAdmin},
		{ID: "user123", Name: "Regular User", Role: models.RoleUser},
	})
}

func TestSession_StartsLoggedOut(t *testing.T) {
	t.Parallel()

	s := New(testDirectory())
	assert.Nil(t, s.Current())
}

func TestSession_SwitchUser(t *testing.T) {
	t.Parallel()

	s := New(testDirectory())
	require.NoError(t, s.SwitchUser("admin123"))
	require.NotNil(t, s.Current())
	assert.Equal(t, models.RoleAdmin, s.Current().Role)

	require.NoError(t, s.SwitchUser("user123"))
	assert.Equal(t, types.UserID("user123"), s.Current().ID)
}

func TestSession_SwitchUser_Unknown(t *testing.T) {
	t.Parallel()

	s := New(testDirectory())
	require.NoError(t, s.SwitchUser("user123"))

	err := s.SwitchUser("mallory")
	assert.ErrorIs(t, err, ErrUnknownUser)
	assert.Equal(t, types.UserID("user123"), s.Current().ID, "failed switch keeps the previous user")
}

func TestSession_Logout(t *testing.T) {
	t.Parallel()

	s := New(testDirectory())
	require.NoError(t, s.SwitchUser("admin123"))
	s.Logout()
	assert.Nil(t, s.Current())
}

func TestSession_ConcurrentSwitches(t *testing.T) {
	t.Parallel()

	s := New(testDirectory())
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_ = s.SwitchUser("admin123")
			} else {
				_ = s.SwitchUser("user123")
			}
			_ = s.Current()
		}(i)
	}
	wg.Wait()

	require.NotNil(t, s.Current())
	assert.Contains(t, []types.UserID{"admin123", "user123"}, s.Current().ID)
}

func TestStaticDirectory_Users(t *testing.T) {
	t.Parallel()

	d := testDirectory()
	users := d.Users()
	require.Len(t, users, 2)
	assert.Equal(t, types.UserID("admin123"), users[0].ID)

	_, ok := d.Lookup("nobody")
	assert.False(t, ok)
}

func TestInitialUserID(t *testing.T) {
	d := testDirectory()

	t.Setenv(UserEnvVar, "admin123")
	assert.Equal(t, types.UserID("admin123"), InitialUserID(d, "user123"))

	t.Setenv(UserEnvVar, "")
	assert.Equal(t, types.UserID("user123"), InitialUserID(d, "user123"))
}
