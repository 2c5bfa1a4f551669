package batch_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/dfmartinez/bodega-api/internal/domain/entity"
	"github.com/dfmartinez/bodega-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: un almacén compartido con repos que imitan la semántica de
// los adaptadores PostgreSQL (GetForUpdate devuelve copia, Update escribe de
// vuelta; así un caso de uso que falla antes de Update no deja estado a medias).
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	batches   map[string]*entity.Batch
	movements []*entity.Movement
}

func newMemStore() *memStore {
	return &memStore{batches: make(map[string]*entity.Batch)}
}

func cloneBatch(b *entity.Batch) *entity.Batch {
	c := *b
	if b.QuantityUnits != nil {
		v := *b.QuantityUnits
		c.QuantityUnits = &v
	}
	if b.QuantityKg != nil {
		v := *b.QuantityKg
		c.QuantityKg = &v
	}
	if b.RemovedAt != nil {
		v := *b.RemovedAt
		c.RemovedAt = &v
	}
	if b.RemovedBy != nil {
		v := *b.RemovedBy
		c.RemovedBy = &v
	}
	return &c
}

type memBatchRepo struct{ s *memStore }

var _ repository.BatchRepository = (*memBatchRepo)(nil)

func (r *memBatchRepo) Create(b *entity.Batch) error {
	r.s.batches[b.ID] = cloneBatch(b)
	return nil
}

func (r *memBatchRepo) GetByID(id string) (*entity.Batch, error) {
	b, ok := r.s.batches[id]
	if !ok {
		return nil, nil
	}
	return cloneBatch(b), nil
}

func (r *memBatchRepo) GetForUpdate(id string) (*entity.Batch, error) {
	return r.GetByID(id)
}

func (r *memBatchRepo) Update(b *entity.Batch) error {
	r.s.batches[b.ID] = cloneBatch(b)
	return nil
}

func (r *memBatchRepo) sorted() []*entity.Batch {
	out := make([]*entity.Batch, 0, len(r.s.batches))
	for _, b := range r.s.batches {
		out = append(out, cloneBatch(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r *memBatchRepo) ListWithStock() ([]*entity.Batch, error) {
	var out []*entity.Batch
	for _, b := range r.sorted() {
		if b.HasStock() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBatchRepo) ListAll() ([]*entity.Batch, error) {
	return r.sorted(), nil
}

func (r *memBatchRepo) Search(q string, limit int) ([]*entity.Batch, error) {
	q = strings.ToLower(q)
	var out []*entity.Batch
	for _, b := range r.sorted() {
		if b.Status != entity.BatchStatusActive {
			continue
		}
		if strings.Contains(strings.ToLower(b.ProductName), q) ||
			strings.Contains(strings.ToLower(b.BatchCode), q) ||
			strings.Contains(strings.ToLower(b.Location), q) {
			out = append(out, b)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *memBatchRepo) SearchPaged(q string, limit, offset int) ([]*entity.Batch, int, error) {
	all, err := r.Search(q, len(r.s.batches)+1)
	if err != nil {
		return nil, 0, err
	}
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (r *memBatchRepo) ListActiveByCode(code string) ([]*entity.Batch, error) {
	var out []*entity.Batch
	for _, b := range r.sorted() {
		if b.Status == entity.BatchStatusActive && b.BatchCode == code {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBatchRepo) OccupiedLocations() (map[string]bool, error) {
	out := make(map[string]bool)
	for _, b := range r.s.batches {
		if b.HasStock() {
			out[b.Location] = true
		}
	}
	return out, nil
}

func (r *memBatchRepo) LatestLocationByCode(codes []string) (map[string]string, error) {
	out := make(map[string]string)
	for _, code := range codes {
		var latest *entity.Batch
		for _, b := range r.s.batches {
			if b.BatchCode != code {
				continue
			}
			if latest == nil || b.CreatedAt.After(latest.CreatedAt) {
				latest = b
			}
		}
		if latest != nil {
			out[code] = latest.Location
		}
	}
	return out, nil
}

func (r *memBatchRepo) CountByStatus(status string) (int, error) {
	n := 0
	for _, b := range r.s.batches {
		if b.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *memBatchRepo) CountRemovedBy(userID string) (int, error) {
	n := 0
	for _, b := range r.s.batches {
		if b.Status == entity.BatchStatusRemoved && b.RemovedBy != nil && *b.RemovedBy == userID {
			n++
		}
	}
	return n, nil
}

type memMovementRepo struct{ s *memStore }

var _ repository.MovementRepository = (*memMovementRepo)(nil)

func (r *memMovementRepo) Create(m *entity.Movement) error {
	c := *m
	r.s.movements = append(r.s.movements, &c)
	return nil
}

func (r *memMovementRepo) ListWithBatchByType(movementType string, from, to *time.Time) ([]*repository.MovementWithBatch, error) {
	var out []*repository.MovementWithBatch
	for _, m := range r.s.movements {
		if m.Type != movementType {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && !m.CreatedAt.Before(*to) {
			continue
		}
		mw := &repository.MovementWithBatch{Movement: *m}
		if b, ok := r.s.batches[m.BatchID]; ok {
			code, name := b.BatchCode, b.ProductName
			mw.BatchCode = &code
			mw.ProductName = &name
		}
		out = append(out, mw)
	}
	return out, nil
}

func (r *memMovementRepo) BatchIDsWithType(movementType string) (map[string]bool, error) {
	ids := make(map[string]bool)
	for _, m := range r.s.movements {
		if m.Type == movementType {
			ids[m.BatchID] = true
		}
	}
	return ids, nil
}

// memTxRunner ejecuta fn directo sobre los repos en memoria. No hay rollback:
// los fakes se apoyan en que los casos de uso no escriben antes de validar.
type memTxRunner struct{ s *memStore }

func (t *memTxRunner) Run(ctx context.Context, fn func(repository.BatchRepository, repository.MovementRepository) error) error {
	return fn(&memBatchRepo{s: t.s}, &memMovementRepo{s: t.s})
}

// movimientosDe devuelve los movimientos de un lote por tipo.
func (s *memStore) movimientosDe(batchID, movementType string) []*entity.Movement {
	var out []*entity.Movement
	for _, m := range s.movements {
		if m.BatchID == batchID && m.Type == movementType {
			out = append(out, m)
		}
	}
	return out
}
