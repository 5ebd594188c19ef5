package board

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/dealflow/internal/links"
	"github.com/thenoetrevino/dealflow/internal/models"
	"github.com/thenoetrevino/dealflow/internal/types"
)

var (
	admin = &models.User{ID: "admin123", Name: "Admin User", Role: models.RoleAdmin}
	alice = &models.User{ID: "alice", Name: "Alice", Role: models.RoleUser}
	bob   = &models.User{ID: "bob", Name: "Bob", Role: models.RoleUser}
	eve   = &models.User{ID: "eve", Name: "Eve", Role: models.RoleUser}
)

// pipelineA is owned by alice and grants bob full access
func pipelineA() *models.Pipeline {
	return &models.Pipeline{
		ID:          "A",
		Name:        "Pipeline A",
		OwnerUserID: "alice",
		Permissions: []models.Permission{{UserID: "bob", AccessLevel: models.AccessFull}},
		Companies: map[types.CompanyID]models.Company{
			"c1": {ID: "c1", Name: "One", Description: "first"},
			"c2": {ID: "c2", Name: "Two", Description: "second"},
			"c3": {ID: "c3", Name: "Three", Description: "third"},
		},
		Columns: map[types.ColumnID]models.Column{
			"inbox": {ID: "inbox", Title: "Inbox", CompanyIDs: types.CompanyIDs("c1", "c2")},
			"done":  {ID: "done", Title: "Done", CompanyIDs: types.CompanyIDs("c3")},
		},
		ColumnOrder: []types.ColumnID{"inbox", "done"},
	}
}

// pipelineB is owned by alice, public, and grants bob read access
func pipelineB() *models.Pipeline {
	return &models.Pipeline{
		ID:          "B",
		Name:        "Pipeline B",
		OwnerUserID: "alice",
		IsPublic:    true,
		Permissions: []models.Permission{{UserID: "bob", AccessLevel: models.AccessRead}},
		Companies: map[types.CompanyID]models.Company{
			"b1": {ID: "b1", Name: "Bee"},
		},
		Columns: map[types.ColumnID]models.Column{
			"lead":   {ID: "lead", Title: "Lead", CompanyIDs: types.CompanyIDs("b1")},
			"closed": {ID: "closed", Title: "Closed"},
		},
		ColumnOrder: []types.ColumnID{"lead", "closed"},
	}
}

// pipelineC is owned by bob and has no columns
func pipelineC() *models.Pipeline {
	return &models.Pipeline{
		ID:          "C",
		Name:        "Empty",
		OwnerUserID: "bob",
	}
}

func newTestSnapshot(t *testing.T, registry links.Registry, pipelines ...*models.Pipeline) *Snapshot {
	t.Helper()

	if len(pipelines) == 0 {
		pipelines = []*models.Pipeline{pipelineA(), pipelineB(), pipelineC()}
	}
	s, err := NewSnapshot(pipelines, registry)
	require.NoError(t, err)
	return s
}

func sequentialIDs(ids ...types.CompanyID) IDFunc {
	i := 0
	return func(types.CompanyID) (types.CompanyID, error) {
		id := ids[i%len(ids)]
		i++
		return id, nil
	}
}

// membership counts column entries per company id across a pipeline
func membership(p *models.Pipeline) map[types.CompanyID]int {
	out := make(map[types.CompanyID]int)
	for _, col := range p.Columns {
		for _, id := range col.CompanyIDs {
			out[id]++
		}
	}
	return out
}
