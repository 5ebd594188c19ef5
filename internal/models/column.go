package models

import "github.com/thenoetrevino/dealflow/internal/types"

// Column represents a pipeline stage (e.g., "Inbox", "Due Diligence").
// CompanyIDs is ordered top to bottom; a company id appears in at most one
// column of a pipeline.
type Column struct {
	ID         types.ColumnID    `yaml:"id" json:"id"`
	Title      string            `yaml:"title" json:"title"`
	CompanyIDs []types.CompanyID `yaml:"company_ids" json:"company_ids"`
}

// IndexOf returns the position of companyID in the column, or -1
func (c Column) IndexOf(companyID types.CompanyID) int {
	for i, id := range c.CompanyIDs {
		if id == companyID {
			return i
		}
	}
	return -1
}

// Clone returns a copy of the column that shares no backing array with c
func (c Column) Clone() Column {
	ids := make([]types.CompanyID, len(c.CompanyIDs))
	copy(ids, c.CompanyIDs)
	c.CompanyIDs = ids
	return c
}
