package models

import "github.com/thenoetrevino/dealflow/internal/types"

// CopySuffix is appended to the display name of a duplicated company
const CopySuffix = " (Copy)"

// Company is a card on a pipeline board. Only Notes changes after creation.
type Company struct {
	ID          types.CompanyID `yaml:"id" json:"id"`
	Name        string          `yaml:"name" json:"name"`
	Description string          `yaml:"description" json:"description"`
	Notes       string          `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// CopyAs returns a duplicate of c under a new identity
func (c Company) CopyAs(id types.CompanyID) Company {
	return Company{
		ID:          id,
		Name:        c.Name + CopySuffix,
		Description: c.Description,
		Notes:       c.Notes,
	}
}
