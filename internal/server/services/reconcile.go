package services

import (
	"context"

	"github.com/dmitrijs2005/gophslides/internal/dbx"
	"github.com/dmitrijs2005/gophslides/internal/server/models"
)

type slideOp struct {
	slide    *models.Slide
	existing bool
}

// reconcilePlan is the diff between the persisted slide set and a target.
// keepIDs holds every referenced existing id once, in first-seen order.
type reconcilePlan struct {
	keepIDs []int64
	ops     []slideOp
}

type reconcileStats struct {
	deleted  int64
	updated  int
	inserted int
	ignored  int
}

// planReconcile partitions target into updates of existing slides and
// inserts of new ones. A slide is existing iff it carries a positive id;
// everything else is new.
func planReconcile(presentationID int64, target []models.SlideInput) reconcilePlan {
	plan := reconcilePlan{
		keepIDs: make([]int64, 0, len(target)),
		ops:     make([]slideOp, 0, len(target)),
	}
	seen := make(map[int64]struct{}, len(target))

	for _, in := range target {
		sl := &models.Slide{PresentationID: presentationID, Content: in.Content, Order: in.Order}
		if in.Existing() {
			sl.ID = *in.ID
			if _, ok := seen[sl.ID]; !ok {
				seen[sl.ID] = struct{}{}
				plan.keepIDs = append(plan.keepIDs, sl.ID)
			}
			plan.ops = append(plan.ops, slideOp{slide: sl, existing: true})
			continue
		}
		plan.ops = append(plan.ops, slideOp{slide: sl})
	}
	return plan
}

// applyReconcile runs the plan on tx: one bulk delete of every slide not
// kept, then an update or insert per target item in target order, then the
// theme. An update that matches no row of this presentation is skipped.
func (s *PresentationService) applyReconcile(ctx context.Context, tx dbx.DBTX, presentationID int64, plan reconcilePlan, theme string) (reconcileStats, error) {
	var st reconcileStats

	slides := s.repomanager.Slides(tx)

	deleted, err := slides.DeleteExcept(ctx, presentationID, plan.keepIDs)
	if err != nil {
		return st, err
	}
	st.deleted = deleted

	for _, op := range plan.ops {
		if !op.existing {
			if err := slides.Create(ctx, op.slide); err != nil {
				return st, err
			}
			st.inserted++
			continue
		}

		ok, err := slides.Update(ctx, op.slide)
		if err != nil {
			return st, err
		}
		if !ok {
			s.log.Warn(ctx, "slide not found in presentation, skipped",
				"presentation_id", presentationID, "slide_id", op.slide.ID)
			st.ignored++
			continue
		}
		st.updated++
	}

	if err := s.repomanager.Presentations(tx).UpdateTheme(ctx, presentationID, theme); err != nil {
		return st, err
	}
	return st, nil
}
