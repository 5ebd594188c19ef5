package board

import (
	"github.com/thenoetrevino/dealflow/internal/access"
	"github.com/thenoetrevino/dealflow/internal/models"
	"github.com/thenoetrevino/dealflow/internal/types"
)

// The functions in this file are the pure snapshot transitions behind the
// Store. Each takes the current snapshot and returns a Result holding either
// a new snapshot or the unchanged one. None of them modify cur or anything
// reachable from it.

// ReorderRequest moves the company at SourceIndex of one column to DestIndex
// of another (or the same) column of a pipeline
type ReorderRequest struct {
	PipelineID     types.PipelineID
	SourceColumnID types.ColumnID
	SourceIndex    int
	DestColumnID   types.ColumnID
	DestIndex      int
}

// DuplicateRequest copies a company into a target pipeline
type DuplicateRequest struct {
	CompanyID        types.CompanyID
	SourcePipelineID types.PipelineID
	TargetPipelineID types.PipelineID
	Linked           bool
}

// IDFunc derives a fresh id for a copy of source
type IDFunc func(source types.CompanyID) (types.CompanyID, error)

// Reorder applies a reorder request. It requires full access to the
// pipeline. Indices are checked against cur, never a cached view: in the same
// column DestIndex addresses the list after removal.
func Reorder(cur *Snapshot, user *models.User, req ReorderRequest) Result {
	p, ok := cur.Pipelines[req.PipelineID]
	if !ok {
		return rejected(OpReorder, cur, ReasonNotFound, "pipeline %s", req.PipelineID)
	}
	if !access.Allows(user, p, models.AccessFull) {
		return rejected(OpReorder, cur, ReasonAccessDenied, "full access to %s required", p.ID)
	}
	src, ok := p.Columns[req.SourceColumnID]
	if !ok {
		return rejected(OpReorder, cur, ReasonNotFound, "column %s", req.SourceColumnID)
	}
	dst, ok := p.Columns[req.DestColumnID]
	if !ok {
		return rejected(OpReorder, cur, ReasonNotFound, "column %s", req.DestColumnID)
	}

	sameColumn := req.SourceColumnID == req.DestColumnID
	if req.SourceIndex < 0 || req.SourceIndex >= len(src.CompanyIDs) {
		return rejected(OpReorder, cur, ReasonOutOfBounds, "source index %d of %d", req.SourceIndex, len(src.CompanyIDs))
	}
	maxDest := len(dst.CompanyIDs)
	if sameColumn {
		maxDest = len(src.CompanyIDs) - 1
	}
	if req.DestIndex < 0 || req.DestIndex > maxDest {
		return rejected(OpReorder, cur, ReasonOutOfBounds, "destination index %d of %d", req.DestIndex, maxDest)
	}
	if sameColumn && req.SourceIndex == req.DestIndex {
		return rejected(OpReorder, cur, ReasonNoop, "company already at position %d", req.DestIndex)
	}

	companyID := src.CompanyIDs[req.SourceIndex]
	next := p.Clone()

	srcIDs := removeAt(src.CompanyIDs, req.SourceIndex)
	if sameColumn {
		src.CompanyIDs = insertAt(srcIDs, req.DestIndex, companyID)
		next.Columns[req.SourceColumnID] = src
	} else {
		src.CompanyIDs = srcIDs
		dst.CompanyIDs = insertAt(dst.CompanyIDs, req.DestIndex, companyID)
		next.Columns[req.SourceColumnID] = src
		next.Columns[req.DestColumnID] = dst
	}

	return applied(OpReorder, cur.with(cur.Links, next), companyID, p.ID)
}

// Move transfers a company between pipelines. It requires full access to
// both. The company leaves the source companies map and whichever source
// column lists it, and is appended to the first column of the target.
func Move(cur *Snapshot, user *models.User, companyID types.CompanyID, sourceID, targetID types.PipelineID) Result {
	src, ok := cur.Pipelines[sourceID]
	if !ok {
		return rejected(OpMove, cur, ReasonNotFound, "pipeline %s", sourceID)
	}
	dst, ok := cur.Pipelines[targetID]
	if !ok {
		return rejected(OpMove, cur, ReasonNotFound, "pipeline %s", targetID)
	}
	if !access.Allows(user, src, models.AccessFull) {
		return rejected(OpMove, cur, ReasonAccessDenied, "full access to %s required", src.ID)
	}
	if !access.Allows(user, dst, models.AccessFull) {
		return rejected(OpMove, cur, ReasonAccessDenied, "full access to %s required", dst.ID)
	}
	if sourceID == targetID {
		return rejected(OpMove, cur, ReasonNoop, "source and target are both %s", sourceID)
	}

	company, ok := src.Companies[companyID]
	if !ok {
		return rejected(OpMove, cur, ReasonNotFound, "company %s in %s", companyID, sourceID)
	}
	if dst.HasCompany(companyID) {
		return rejected(OpMove, cur, ReasonConflict, "company %s already in %s", companyID, targetID)
	}
	firstCol, ok := dst.FirstColumnID()
	if !ok {
		return rejected(OpMove, cur, ReasonNoColumns, "pipeline %s", targetID)
	}

	nextSrc := src.Clone()
	delete(nextSrc.Companies, companyID)
	detach(nextSrc, companyID)

	nextDst := dst.Clone()
	nextDst.Companies[companyID] = company
	// a dangling column entry for the id would leave it in two columns
	detach(nextDst, companyID)
	appendToColumn(nextDst, firstCol, companyID)

	return applied(OpMove, cur.with(cur.Links, nextSrc, nextDst), companyID, sourceID, targetID)
}

// Duplicate copies a company into the target pipeline under a new id. It
// requires full access to the target only; the source is never modified. A linked duplicate is registered so note edits
// propagate between the copy and its original.
func Duplicate(cur *Snapshot, user *models.User, req DuplicateRequest, newID IDFunc) Result {
	src, ok := cur.Pipelines[req.SourcePipelineID]
	if !ok {
		return rejected(OpDuplicate, cur, ReasonNotFound, "pipeline %s", req.SourcePipelineID)
	}
	dst, ok := cur.Pipelines[req.TargetPipelineID]
	if !ok {
		return rejected(OpDuplicate, cur, ReasonNotFound, "pipeline %s", req.TargetPipelineID)
	}
	if !access.Allows(user, dst, models.AccessFull) {
		return rejected(OpDuplicate, cur, ReasonAccessDenied, "full access to %s required", dst.ID)
	}

	company, ok := src.Companies[req.CompanyID]
	if !ok {
		return rejected(OpDuplicate, cur, ReasonNotFound, "company %s in %s", req.CompanyID, src.ID)
	}
	firstCol, ok := dst.FirstColumnID()
	if !ok {
		return rejected(OpDuplicate, cur, ReasonNoColumns, "pipeline %s", dst.ID)
	}

	copyID, err := newID(req.CompanyID)
	if err != nil {
		return rejected(OpDuplicate, cur, ReasonConflict, "generating id: %v", err)
	}
	if inUse(cur, copyID) {
		return rejected(OpDuplicate, cur, ReasonConflict, "generated id %s already in use", copyID)
	}

	nextDst := dst.Clone()
	nextDst.Companies[copyID] = company.CopyAs(copyID)
	appendToColumn(nextDst, firstCol, copyID)

	registry := cur.Links
	if req.Linked {
		registry = registry.Register(copyID, req.CompanyID)
	}

	return applied(OpDuplicate, cur.with(registry, nextDst), copyID, dst.ID)
}

// UpdateNotes sets the notes of a company in pipelineID (or, when empty, the
// first pipeline holding it that the user can edit, else the first holder),
// then propagates the same notes one hop across the link registry: to the
// original if the company is a copy, and to every copy if it is an original. The edited pipeline requires full access; each
// propagation target pipeline is gated independently and skipped (reported
// in Result.Skipped) without it. Link entries whose referents no longer exist
// are ignored.
func UpdateNotes(cur *Snapshot, user *models.User, pipelineID types.PipelineID, companyID types.CompanyID, notes string) Result {
	if pipelineID == "" {
		holders := cur.FindCompany(companyID)
		if len(holders) == 0 {
			return rejected(OpUpdateNotes, cur, ReasonNotFound, "company %s", companyID)
		}
		pipelineID = holders[0]
		for _, h := range holders {
			if access.Allows(user, cur.Pipelines[h], models.AccessFull) {
				pipelineID = h
				break
			}
		}
	}

	p, ok := cur.Pipelines[pipelineID]
	if !ok {
		return rejected(OpUpdateNotes, cur, ReasonNotFound, "pipeline %s", pipelineID)
	}
	if !access.Allows(user, p, models.AccessFull) {
		return rejected(OpUpdateNotes, cur, ReasonAccessDenied, "full access to %s required", p.ID)
	}
	if !p.HasCompany(companyID) {
		return rejected(OpUpdateNotes, cur, ReasonNotFound, "company %s in %s", companyID, pipelineID)
	}

	changed := make(map[types.PipelineID]*models.Pipeline)
	var changedOrder []types.PipelineID
	var skipped []types.PipelineID

	setNotes := func(pl *models.Pipeline, id types.CompanyID) {
		if pl.Companies[id].Notes == notes {
			return
		}
		next, ok := changed[pl.ID]
		if !ok {
			next = pl.Clone()
			changed[pl.ID] = next
			changedOrder = append(changedOrder, pl.ID)
		}
		c := next.Companies[id]
		c.Notes = notes
		next.Companies[id] = c
	}

	setNotes(p, companyID)

	for _, linkedID := range cur.Links.ResolveLinked(companyID) {
		for _, pid := range cur.Order {
			target := cur.Pipelines[pid]
			if !target.HasCompany(linkedID) {
				continue
			}
			if !access.Allows(user, target, models.AccessFull) {
				skipped = appendUnique(skipped, pid)
				continue
			}
			setNotes(target, linkedID)
		}
	}

	if len(changed) == 0 {
		res := rejected(OpUpdateNotes, cur, ReasonNoop, "notes unchanged")
		res.CompanyID = companyID
		res.Skipped = skipped
		return res
	}

	pipelines := make([]*models.Pipeline, 0, len(changedOrder))
	for _, id := range changedOrder {
		pipelines = append(pipelines, changed[id])
	}
	res := applied(OpUpdateNotes, cur.with(cur.Links, pipelines...), companyID, changedOrder...)
	res.Skipped = skipped
	return res
}

// Delete removes a company from one pipeline: from its companies map and
// from whichever column lists it. It requires the admin role regardless of
// pipeline access. Other pipelines and link entries are left untouched, so
// links may dangle afterwards.
func Delete(cur *Snapshot, user *models.User, companyID types.CompanyID, pipelineID types.PipelineID) Result {
	p, ok := cur.Pipelines[pipelineID]
	if !ok {
		return rejected(OpDelete, cur, ReasonNotFound, "pipeline %s", pipelineID)
	}
	if !access.CanDelete(user) {
		return rejected(OpDelete, cur, ReasonAccessDenied, "admin role required")
	}
	if !p.HasCompany(companyID) {
		return rejected(OpDelete, cur, ReasonNotFound, "company %s in %s", companyID, pipelineID)
	}

	next := p.Clone()
	delete(next.Companies, companyID)
	detach(next, companyID)

	return applied(OpDelete, cur.with(cur.Links, next), companyID, p.ID)
}

// detach removes companyID from every column of p that lists it. p must be a
// clone owned by the caller; touched columns are cloned before editing.
func detach(p *models.Pipeline, companyID types.CompanyID) {
	for colID, col := range p.Columns {
		if col.IndexOf(companyID) < 0 {
			continue
		}
		kept := make([]types.CompanyID, 0, len(col.CompanyIDs))
		for _, id := range col.CompanyIDs {
			if id != companyID {
				kept = append(kept, id)
			}
		}
		col.CompanyIDs = kept
		p.Columns[colID] = col
	}
}

func appendToColumn(p *models.Pipeline, colID types.ColumnID, companyID types.CompanyID) {
	col := p.Columns[colID].Clone()
	col.CompanyIDs = append(col.CompanyIDs, companyID)
	p.Columns[colID] = col
}

func inUse(s *Snapshot, id types.CompanyID) bool {
	if len(s.FindCompany(id)) > 0 {
		return true
	}
	if _, ok := s.Links.Original(id); ok {
		return true
	}
	return len(s.Links.CopiesOf(id)) > 0
}

// removeAt returns a new slice without the element at i
func removeAt(ids []types.CompanyID, i int) []types.CompanyID {
	out := make([]types.CompanyID, 0, len(ids)-1)
	out = append(out, ids[:i]...)
	return append(out, ids[i+1:]...)
}

// insertAt returns a new slice with id inserted before position i
func insertAt(ids []types.CompanyID, i int, id types.CompanyID) []types.CompanyID {
	out := make([]types.CompanyID, 0, len(ids)+1)
	out = append(out, ids[:i]...)
	out = append(out, id)
	return append(out, ids[i:]...)
}

func appendUnique(ids []types.PipelineID, id types.PipelineID) []types.PipelineID {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
