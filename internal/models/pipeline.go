package models

import "github.com/thenoetrevino/dealflow/internal/types"

// Permission grants a single user an explicit access level on a pipeline
type Permission struct {
	UserID      types.UserID `yaml:"user_id" json:"user_id"`
	AccessLevel AccessLevel  `yaml:"access_level" json:"access_level"`
}

// Pipeline is a board: companies organized into ordered columns, with its own
// access rules.
//
// A Pipeline held by a board snapshot is shared between snapshots and must be
// treated as read-only. Mutations go through the board store, which clones the
// parts it changes.
type Pipeline struct {
	ID          types.PipelineID            `yaml:"id" json:"id"`
	Name        string                      `yaml:"name" json:"name"`
	OwnerUserID types.UserID                `yaml:"owner_user_id" json:"owner_user_id"`
	IsPublic    bool                        `yaml:"is_public" json:"is_public"`
	Permissions []Permission                `yaml:"permissions" json:"permissions"`
	Companies   map[types.CompanyID]Company `yaml:"companies" json:"companies"`
	Columns     map[types.ColumnID]Column   `yaml:"columns" json:"columns"`
	ColumnOrder []types.ColumnID            `yaml:"column_order" json:"column_order"`
}

// PermissionFor returns the explicit permission entry for userID, if any.
// The first matching entry wins.
func (p *Pipeline) PermissionFor(userID types.UserID) (Permission, bool) {
	for _, perm := range p.Permissions {
		if perm.UserID == userID {
			return perm, true
		}
	}
	return Permission{}, false
}

// FirstColumnID returns the id of the first column in display order
func (p *Pipeline) FirstColumnID() (types.ColumnID, bool) {
	if len(p.ColumnOrder) == 0 {
		return "", false
	}
	return p.ColumnOrder[0], true
}

// ColumnOf returns the id of the column currently listing companyID
func (p *Pipeline) ColumnOf(companyID types.CompanyID) (types.ColumnID, bool) {
	for _, colID := range p.ColumnOrder {
		if p.Columns[colID].IndexOf(companyID) >= 0 {
			return colID, true
		}
	}
	return "", false
}

// HasCompany reports whether companyID is a key of the companies map
func (p *Pipeline) HasCompany(companyID types.CompanyID) bool {
	_, ok := p.Companies[companyID]
	return ok
}

// CompaniesIn resolves a column's ordered ids to companies, skipping ids that
// do not resolve.
func (p *Pipeline) CompaniesIn(columnID types.ColumnID) []Company {
	col, ok := p.Columns[columnID]
	if !ok {
		return nil
	}
	out := make([]Company, 0, len(col.CompanyIDs))
	for _, id := range col.CompanyIDs {
		if c, ok := p.Companies[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Clone returns a shallow copy of p with fresh top-level maps and slices.
// Columns and companies are copied by value; column id slices are still
// shared until replaced with Column.Clone.
func (p *Pipeline) Clone() *Pipeline {
	cp := *p
	cp.Permissions = append([]Permission(nil), p.Permissions...)
	cp.ColumnOrder = append([]types.ColumnID(nil), p.ColumnOrder...)
	cp.Companies = make(map[types.CompanyID]Company, len(p.Companies))
	for k, v := range p.Companies {
		cp.Companies[k] = v
	}
	cp.Columns = make(map[types.ColumnID]Column, len(p.Columns))
	for k, v := range p.Columns {
		cp.Columns[k] = v
	}
	return &cp
}
