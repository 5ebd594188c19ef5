package types

// ID types give each string identifier its domain meaning so a company id
// can never be passed where a column id is expected. All ids are assigned by
// the seed loader except copy ids, which the board derives from the source id.

// PipelineID identifies a pipeline (board)
type PipelineID string

// ColumnID identifies a column within a pipeline
type ColumnID string

// CompanyID identifies a company card
type CompanyID string

// UserID identifies a user issued by the identity provider
type UserID string

func (id PipelineID) String() string { return string(id) }

func (id ColumnID) String() string { return string(id) }

func (id CompanyID) String() string { return string(id) }

func (id UserID) String() string { return string(id) }

// CompanyIDs converts plain strings into company ids
func CompanyIDs(ids ...string) []CompanyID {
	out := make([]CompanyID, len(ids))
	for i, id := range ids {
		out[i] = CompanyID(id)
	}
	return out
}
