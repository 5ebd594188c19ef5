package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thenoetrevino/dealflow/internal/models"
)

var (
	admin   = &models.User{ID: "admin123", Name: "Admin User", Role: models.RoleAdmin}
	regular = &models.User{ID: "user123", Name: "Regular User", Role: models.RoleUser}
	owner   = &models.User{ID: "owner1", Name: "Owner", Role: models.RoleUser}
	other   = &models.User{ID: "someone", Name: "Someone", Role: models.RoleUser}
)

func pipeline(public bool, perms ...models.Permission) *models.Pipeline {
	return &models.Pipeline{
		ID:          "p",
		OwnerUserID: owner.ID,
		IsPublic:    public,
		Permissions: perms,
	}
}

func TestLevel_Rules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		user     *models.User
		pipeline *models.Pipeline
		want     models.AccessLevel
	}{
		{"nil user", nil, pipeline(true), models.AccessNone},
		{"nil pipeline", admin, nil, models.AccessNone},
		{"admin on private pipeline", admin, pipeline(false), models.AccessFull},
		{"admin explicitly set to none", admin, pipeline(false, models.Permission{UserID: admin.ID, AccessLevel: models.AccessNone}), models.AccessFull},
		{"owner without entry", owner, pipeline(false), models.AccessFull},
		{"owner listed as read", owner, pipeline(false, models.Permission{UserID: owner.ID, AccessLevel: models.AccessRead}), models.AccessFull},
		{"listed read", regular, pipeline(false, models.Permission{UserID: regular.ID, AccessLevel: models.AccessRead}), models.AccessRead},
		{"listed full", regular, pipeline(false, models.Permission{UserID: regular.ID, AccessLevel: models.AccessFull}), models.AccessFull},
		{"listed none beats public", regular, pipeline(true, models.Permission{UserID: regular.ID, AccessLevel: models.AccessNone}), models.AccessNone},
		{"public fallback", other, pipeline(true), models.AccessRead},
		{"private, unlisted", other, pipeline(false, models.Permission{UserID: regular.ID, AccessLevel: models.AccessFull}), models.AccessNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Level(tt.user, tt.pipeline))
		})
	}
}

func TestLevel_IsIdempotent(t *testing.T) {
	t.Parallel()

	p := pipeline(true, models.Permission{UserID: regular.ID, AccessLevel: models.AccessRead})
	users := []*models.User{nil, admin, regular, owner, other}

	for _, u := range users {
		first := Level(u, p)
		for i := 0; i < 100; i++ {
			if got := Level(u, p); got != first {
				t.Fatalf("Level changed between calls: %v then %v", first, got)
			}
		}
		assert.Contains(t, []models.AccessLevel{models.AccessNone, models.AccessRead, models.AccessFull}, first)
	}
}

func TestLevel_AdminAlwaysFull(t *testing.T) {
	t.Parallel()

	configs := []*models.Pipeline{
		pipeline(false),
		pipeline(true),
		pipeline(false, models.Permission{UserID: admin.ID, AccessLevel: models.AccessRead}),
		{ID: "p", OwnerUserID: "nobody"},
	}
	for _, p := range configs {
		assert.Equal(t, models.AccessFull, Level(admin, p))
	}
}

func TestAllowsAndHelpers(t *testing.T) {
	t.Parallel()

	p := pipeline(true)
	assert.True(t, Allows(other, p, models.AccessRead))
	assert.False(t, Allows(other, p, models.AccessFull))
	assert.True(t, Allows(owner, p, models.AccessFull))

	assert.True(t, CanView(other, p))
	assert.False(t, CanView(other, pipeline(false)))
	assert.False(t, CanView(nil, p))

	assert.True(t, CanDelete(admin))
	assert.False(t, CanDelete(owner))
	assert.False(t, CanDelete(nil))
}
