package board

import (
	"github.com/thenoetrevino/dealflow/internal/access"
	"github.com/thenoetrevino/dealflow/internal/models"
	"github.com/thenoetrevino/dealflow/internal/types"
)

// ColumnView is a column with its company ids resolved
type ColumnView struct {
	ID        types.ColumnID
	Title     string
	Companies []models.Company
}

// BoardView is what a presentation layer renders for one pipeline
type BoardView struct {
	Pipeline *models.Pipeline
	Access   models.AccessLevel
	Columns  []ColumnView
}

// Board resolves the pipeline's columns in display order for user. Column
// entries that do not resolve to a company are skipped. It returns false when
// the pipeline does not exist or user has no access to it.
func (s *Snapshot) Board(user *models.User, pipelineID types.PipelineID) (BoardView, bool) {
	p, ok := s.Pipelines[pipelineID]
	if !ok {
		return BoardView{}, false
	}
	level := access.Level(user, p)
	if level == models.AccessNone {
		return BoardView{}, false
	}

	view := BoardView{Pipeline: p, Access: level}
	for _, colID := range p.ColumnOrder {
		col, ok := p.Columns[colID]
		if !ok {
			continue
		}
		view.Columns = append(view.Columns, ColumnView{
			ID:        col.ID,
			Title:     col.Title,
			Companies: p.CompaniesIn(colID),
		})
	}
	return view, true
}
