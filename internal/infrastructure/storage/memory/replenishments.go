package memory

import (
	"context"

	"kardex/internal/core/apperror"
	"kardex/internal/core/id"
	"kardex/internal/domain/replenishments"
)

// ReplenishmentRepo returns the replenishments.Repository view of the store.
func (s *Store) ReplenishmentRepo() replenishments.Repository { return (*replenishmentRepo)(s) }

type replenishmentRepo Store

func (r *replenishmentRepo) store() *Store { return (*Store)(r) }

func (r *replenishmentRepo) Create(ctx context.Context, rec *replenishments.Replenishment) error {
	s := r.store()
	defer s.enter(ctx)()

	s.state.replenishments = append(s.state.replenishments, *rec)
	return nil
}

func (r *replenishmentRepo) GetByID(ctx context.Context, replenishmentID id.ID) (*replenishments.Replenishment, error) {
	s := r.store()
	defer s.enter(ctx)()

	for _, rec := range s.state.replenishments {
		if rec.ID == replenishmentID {
			out := rec
			return &out, nil
		}
	}
	return nil, apperror.NewNotFound("replenishment", replenishmentID)
}

func (r *replenishmentRepo) Update(ctx context.Context, rec *replenishments.Replenishment) error {
	s := r.store()
	defer s.enter(ctx)()

	for i := range s.state.replenishments {
		if s.state.replenishments[i].ID == rec.ID {
			s.state.replenishments[i] = *rec
			return nil
		}
	}
	return apperror.NewNotFound("replenishment", rec.ID)
}

func (r *replenishmentRepo) Delete(ctx context.Context, replenishmentID id.ID) error {
	s := r.store()
	defer s.enter(ctx)()

	for i := range s.state.replenishments {
		if s.state.replenishments[i].ID == replenishmentID {
			s.state.replenishments = append(s.state.replenishments[:i], s.state.replenishments[i+1:]...)
			return nil
		}
	}
	return apperror.NewNotFound("replenishment", replenishmentID)
}

func (r *replenishmentRepo) List(ctx context.Context) ([]replenishments.Replenishment, error) {
	s := r.store()
	defer s.enter(ctx)()

	out := make([]replenishments.Replenishment, len(s.state.replenishments))
	copy(out, s.state.replenishments)
	return out, nil
}

func (r *replenishmentRepo) ExistsByRef(ctx context.Context, replenishmentRef int64) (bool, error) {
	s := r.store()
	defer s.enter(ctx)()

	for _, rec := range s.state.replenishments {
		if rec.ReplenishmentRef == replenishmentRef {
			return true, nil
		}
	}
	return false, nil
}
