// Package pipeline holds the read-only pipeline commands
package pipeline

import (
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealflow/internal/models"
)

// PipelineCmd returns the pipeline parent command
func PipelineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Inspect the pipelines you can access",
		Long:  "List pipelines and show their boards as the current user.",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())

	return cmd
}

// Summary is one row of 'pipeline list'
type Summary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Owner     string `json:"owner_user_id"`
	IsPublic  bool   `json:"is_public"`
	Access    string `json:"access"`
	Companies int    `json:"companies"`
}

// GetID returns the pipeline id, for quiet output
func (s Summary) GetID() string {
	return s.ID
}

func newSummary(p *models.Pipeline, level models.AccessLevel) Summary {
	return Summary{
		ID:        string(p.ID),
		Name:      p.Name,
		Owner:     string(p.OwnerUserID),
		IsPublic:  p.IsPublic,
		Access:    level.String(),
		Companies: len(p.Companies),
	}
}
