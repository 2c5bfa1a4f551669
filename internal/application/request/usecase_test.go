package request_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfmartinez/bodega-api/internal/application/dto"
	"github.com/dfmartinez/bodega-api/internal/application/request"
	"github.com/dfmartinez/bodega-api/internal/domain"
	"github.com/dfmartinez/bodega-api/internal/domain/entity"
	"github.com/dfmartinez/bodega-api/internal/domain/repository"
)

const testActor = "00000000-0000-0000-0000-00000000000a"

type fakeRequestRepo struct {
	requests map[string]*entity.StockRequest
}

var _ repository.StockRequestRepository = (*fakeRequestRepo)(nil)

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]*entity.StockRequest)}
}

func (r *fakeRequestRepo) Create(req *entity.StockRequest) error {
	c := *req
	r.requests[req.ID] = &c
	return nil
}

func (r *fakeRequestRepo) GetByID(id string) (*entity.StockRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, nil
	}
	c := *req
	return &c, nil
}

func (r *fakeRequestRepo) List(statuses []string) ([]*entity.StockRequest, error) {
	var out []*entity.StockRequest
	for _, req := range r.requests {
		if len(statuses) == 0 {
			out = append(out, req)
			continue
		}
		for _, s := range statuses {
			if req.Status == s {
				out = append(out, req)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) UpdateStatus(id, status string, seenAt time.Time) error {
	req := r.requests[id]
	req.Status = status
	req.SeenAt = &seenAt
	return nil
}

// fakeLocations resuelve la última celda conocida por código.
type fakeLocations struct {
	repository.BatchRepository
	byCode map[string]string
}

func (f *fakeLocations) LatestLocationByCode(codes []string) (map[string]string, error) {
	out := make(map[string]string)
	for _, c := range codes {
		if loc, ok := f.byCode[c]; ok {
			out[c] = loc
		}
	}
	return out, nil
}

func newUseCase(locations map[string]string) (*request.StockRequestUseCase, *fakeRequestRepo) {
	repo := newFakeRequestRepo()
	return request.NewStockRequestUseCase(repo, &fakeLocations{byCode: locations}), repo
}

func intPtr(v int64) *int64 { return &v }

func TestCreate_SolicitudNueva(t *testing.T) {
	uc, _ := newUseCase(nil)

	req, err := uc.Create(context.Background(), testActor, dto.CreateStockRequest{
		ProductName:   "Harina de trigo",
		BatchCode:     "HT-001",
		QuantityUnits: intPtr(20),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RequestStatusNew, req.Status)
	assert.Equal(t, testActor, req.CreatedBy)
	assert.Equal(t, int64(20), req.QuantityUnits)
	assert.Nil(t, req.SeenAt)
}

func TestCreate_Validaciones(t *testing.T) {
	uc, _ := newUseCase(nil)
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.CreateStockRequest
	}{
		{"sin producto", dto.CreateStockRequest{QuantityUnits: intPtr(1)}},
		{"sin cantidades", dto.CreateStockRequest{ProductName: "Sal"}},
		{"unidades negativas", dto.CreateStockRequest{ProductName: "Sal", QuantityUnits: intPtr(-1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, testActor, tc.in)
			_, ok := domain.AsValidation(err)
			assert.True(t, ok)
		})
	}
}

// COMPLETED agrupa DONE y FAILED en el listado.
func TestList_FiltroCompleted(t *testing.T) {
	uc, repo := newUseCase(nil)
	ctx := context.Background()

	for _, status := range []string{
		entity.RequestStatusNew, entity.RequestStatusDone, entity.RequestStatusFailed,
	} {
		req, err := uc.Create(ctx, testActor, dto.CreateStockRequest{
			ProductName: "Producto " + status, QuantityUnits: intPtr(1),
		})
		require.NoError(t, err)
		repo.requests[req.ID].Status = status
	}

	list, err := uc.List(ctx, request.StatusCompleted)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, r := range list {
		assert.Contains(t, []string{entity.RequestStatusDone, entity.RequestStatusFailed}, r.Status)
	}

	all, err := uc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

// El listado resuelve la última celda conocida del código de lote.
func TestList_ResuelveUbicacion(t *testing.T) {
	uc, _ := newUseCase(map[string]string{"HT-001": "A-3-2"})
	ctx := context.Background()

	_, err := uc.Create(ctx, testActor, dto.CreateStockRequest{
		ProductName: "Harina de trigo", BatchCode: "HT-001", QuantityUnits: intPtr(5),
	})
	require.NoError(t, err)
	_, err = uc.Create(ctx, testActor, dto.CreateStockRequest{
		ProductName: "Sin código", QuantityUnits: intPtr(2),
	})
	require.NoError(t, err)

	list, err := uc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, r := range list {
		if r.BatchCode == "HT-001" {
			assert.Equal(t, "A-3-2", r.Location)
		} else {
			assert.Empty(t, r.Location)
		}
	}
}

func TestTransiciones(t *testing.T) {
	uc, repo := newUseCase(nil)
	ctx := context.Background()

	req, err := uc.Create(ctx, testActor, dto.CreateStockRequest{
		ProductName: "Harina de trigo", QuantityUnits: intPtr(5),
	})
	require.NoError(t, err)

	require.NoError(t, uc.MarkSeen(ctx, req.ID))
	assert.Equal(t, entity.RequestStatusSeen, repo.requests[req.ID].Status)
	assert.NotNil(t, repo.requests[req.ID].SeenAt)

	require.NoError(t, uc.MarkDone(ctx, req.ID))
	assert.Equal(t, entity.RequestStatusDone, repo.requests[req.ID].Status)

	require.NoError(t, uc.MarkFailed(ctx, req.ID))
	assert.Equal(t, entity.RequestStatusFailed, repo.requests[req.ID].Status)
}

func TestTransicion_NoExiste(t *testing.T) {
	uc, _ := newUseCase(nil)
	err := uc.MarkSeen(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
