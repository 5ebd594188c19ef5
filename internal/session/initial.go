package session

import (
	"os"
	"os/user"

	"github.com/thenoetrevino/dealflow/internal/types"
)

// UserEnvVar names the environment variable holding the acting user id
const UserEnvVar = "DEALFLOW_USER"

// InitialUserID picks the user a new session starts with.
// It tries, in order:
// 1. the DEALFLOW_USER environment variable
// 2. the configured default user
// 3. the OS username, if the directory knows it
// An empty result means the session starts logged out.
func InitialUserID(directory Directory, configured types.UserID) types.UserID {
	if env := os.Getenv(UserEnvVar); env != "" {
		return types.UserID(env)
	}
	if configured != "" {
		return configured
	}
	if osUser, err := user.Current(); err == nil {
		if _, ok := directory.Lookup(types.UserID(osUser.Username)); ok {
			return types.UserID(osUser.Username)
		}
	}
	return ""
}
