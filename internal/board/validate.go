package board

import (
	"fmt"
	"sort"
	"strings"

	"github.com/thenoetrevino/dealflow/internal/models"
	"github.com/thenoetrevino/dealflow/internal/types"
)

// ViolationKind classifies a broken board invariant
type ViolationKind string

const (
	// Structural violations: a snapshot holding one is rejected.
	ViolationPipelineKey  ViolationKind = "pipeline_key_mismatch"
	ViolationPipelineList ViolationKind = "pipeline_order_mismatch"
	ViolationColumnKey    ViolationKind = "column_key_mismatch"
	ViolationColumnOrder  ViolationKind = "column_order_mismatch"
	ViolationCompanyKey   ViolationKind = "company_key_mismatch"
	ViolationDuplicate    ViolationKind = "duplicate_membership"

	// Membership violations: tolerated in seeded data (read paths filter
	// them), never introduced by a mutation.
	ViolationDangling ViolationKind = "dangling_reference"
	ViolationOrphan   ViolationKind = "orphan_company"
)

// Tolerated reports whether the violation may exist in seeded data
func (k ViolationKind) Tolerated() bool {
	return k == ViolationDangling || k == ViolationOrphan
}

// Violation is one broken invariant
type Violation struct {
	Kind       ViolationKind
	PipelineID types.PipelineID
	ColumnID   types.ColumnID
	CompanyID  types.CompanyID
}

func (v Violation) String() string {
	var b strings.Builder
	b.WriteString(string(v.Kind))
	fmt.Fprintf(&b, " pipeline=%s", v.PipelineID)
	if v.ColumnID != "" {
		fmt.Fprintf(&b, " column=%s", v.ColumnID)
	}
	if v.CompanyID != "" {
		fmt.Fprintf(&b, " company=%s", v.CompanyID)
	}
	return b.String()
}

// InvariantError lists structural violations found in a snapshot
type InvariantError struct {
	Violations []Violation
}

func (e *InvariantError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return "board invariants violated: " + strings.Join(parts, "; ")
}

// Unwrap lets errors.Is match ErrInvariant
func (e *InvariantError) Unwrap() error {
	return ErrInvariant
}

// Validate checks every pipeline of s and returns an *InvariantError listing
// the structural violations, or nil. Tolerated violations are not reported;
// use Violations for the full list.
func Validate(s *Snapshot) error {
	var fatal []Violation
	for _, v := range Violations(s) {
		if !v.Kind.Tolerated() {
			fatal = append(fatal, v)
		}
	}
	if len(fatal) == 0 {
		return nil
	}
	return &InvariantError{Violations: fatal}
}

// Violations returns every violation in s, structural and tolerated
func Violations(s *Snapshot) []Violation {
	var out []Violation

	if len(s.Order) != len(s.Pipelines) {
		out = append(out, Violation{Kind: ViolationPipelineList})
	}
	seen := make(map[types.PipelineID]bool, len(s.Order))
	for _, id := range s.Order {
		if _, ok := s.Pipelines[id]; !ok || seen[id] {
			out = append(out, Violation{Kind: ViolationPipelineList, PipelineID: id})
		}
		seen[id] = true
	}

	ids := make([]types.PipelineID, 0, len(s.Pipelines))
	for id := range s.Pipelines {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		p := s.Pipelines[id]
		if p.ID != id {
			out = append(out, Violation{Kind: ViolationPipelineKey, PipelineID: id})
		}
		out = append(out, PipelineViolations(p)...)
	}
	return out
}

// PipelineViolations checks a single pipeline
func PipelineViolations(p *models.Pipeline) []Violation {
	var out []Violation
	add := func(kind ViolationKind, col types.ColumnID, company types.CompanyID) {
		out = append(out, Violation{Kind: kind, PipelineID: p.ID, ColumnID: col, CompanyID: company})
	}

	// columnOrder must be a permutation of the column keys
	if len(p.ColumnOrder) != len(p.Columns) {
		add(ViolationColumnOrder, "", "")
	}
	inOrder := make(map[types.ColumnID]bool, len(p.ColumnOrder))
	for _, colID := range p.ColumnOrder {
		if _, ok := p.Columns[colID]; !ok || inOrder[colID] {
			add(ViolationColumnOrder, colID, "")
		}
		inOrder[colID] = true
	}

	colIDs := make([]types.ColumnID, 0, len(p.Columns))
	for colID := range p.Columns {
		colIDs = append(colIDs, colID)
	}
	sort.Slice(colIDs, func(i, j int) bool { return colIDs[i] < colIDs[j] })

	listed := make(map[types.CompanyID]types.ColumnID)
	for _, colID := range colIDs {
		col := p.Columns[colID]
		if col.ID != colID {
			add(ViolationColumnKey, colID, "")
		}
		for _, companyID := range col.CompanyIDs {
			if _, dup := listed[companyID]; dup {
				add(ViolationDuplicate, colID, companyID)
				continue
			}
			listed[companyID] = colID
			if _, ok := p.Companies[companyID]; !ok {
				add(ViolationDangling, colID, companyID)
			}
		}
	}

	companyIDs := make([]types.CompanyID, 0, len(p.Companies))
	for id := range p.Companies {
		companyIDs = append(companyIDs, id)
	}
	sort.Slice(companyIDs, func(i, j int) bool { return companyIDs[i] < companyIDs[j] })

	for _, id := range companyIDs {
		if p.Companies[id].ID != id {
			add(ViolationCompanyKey, "", id)
		}
		if _, ok := listed[id]; !ok {
			add(ViolationOrphan, "", id)
		}
	}
	return out
}

// introduced returns the violations present in next but not in prev for the
// given pipelines
func introduced(prev, next *Snapshot, pipelineIDs []types.PipelineID) []Violation {
	var out []Violation
	for _, id := range pipelineIDs {
		before := make(map[Violation]bool)
		if p, ok := prev.Pipelines[id]; ok {
			for _, v := range PipelineViolations(p) {
				before[v] = true
			}
		}
		p, ok := next.Pipelines[id]
		if !ok {
			continue
		}
		for _, v := range PipelineViolations(p) {
			if !before[v] {
				out = append(out, v)
			}
		}
	}
	return out
}
