package batch_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfmartinez/bodega-api/internal/application/batch"
	"github.com/dfmartinez/bodega-api/internal/application/dto"
	"github.com/dfmartinez/bodega-api/internal/domain"
	"github.com/dfmartinez/bodega-api/internal/domain/entity"
)

const testActor = "00000000-0000-0000-0000-00000000000a"

func newLifecycle(t *testing.T) (*batch.LifecycleUseCase, *memStore) {
	t.Helper()
	s := newMemStore()
	return batch.NewLifecycleUseCase(&memTxRunner{s: s}, &memBatchRepo{s: s}), s
}

func intPtr(v int64) *int64 { return &v }

func kgPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta de lotes
// ──────────────────────────────────────────────────────────────────────────────

// El alta crea el lote ACTIVE y su movimiento IN con el mismo timestamp.
func TestCreate_RegistraLoteYMovimientoIN(t *testing.T) {
	uc, s := newLifecycle(t)

	b, err := uc.Create(context.Background(), testActor, dto.CreateBatchRequest{
		ProductName:   "Harina de trigo",
		BatchCode:     "HT-2024-001",
		Location:      "A-1-1",
		QuantityUnits: intPtr(100),
		QuantityKg:    kgPtr("50"),
	})
	require.NoError(t, err)
	require.NotNil(t, b)

	assert.Equal(t, entity.BatchStatusActive, b.Status)
	assert.False(t, b.IsArchived)
	assert.Equal(t, int64(100), *b.QuantityUnits)
	assert.True(t, b.QuantityKg.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, int64(0), b.RemovedUnits)

	ins := s.movimientosDe(b.ID, entity.MovementTypeIN)
	require.Len(t, ins, 1, "el alta debe dejar exactamente un movimiento IN")
	assert.Equal(t, int64(100), ins[0].QuantityUnits)
	assert.True(t, ins[0].QuantityKg.Equal(decimal.NewFromInt(50)))
	assert.True(t, ins[0].CreatedAt.Equal(b.CreatedAt),
		"el IN debe compartir timestamp con el alta del lote")
}

// Un lote puede registrarse con una sola medida; la otra queda sin seguimiento.
func TestCreate_SoloUnaMedida(t *testing.T) {
	uc, _ := newLifecycle(t)

	b, err := uc.Create(context.Background(), testActor, dto.CreateBatchRequest{
		ProductName: "Azúcar",
		BatchCode:   "AZ-001",
		Location:    "B-2-3",
		QuantityKg:  kgPtr("25.500"),
	})
	require.NoError(t, err)
	assert.Nil(t, b.QuantityUnits, "la medida no enviada queda en nil (sin seguimiento)")
	assert.True(t, b.QuantityKg.Equal(decimal.RequireFromString("25.500")))
}

func TestCreate_Validaciones(t *testing.T) {
	uc, _ := newLifecycle(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.CreateBatchRequest
	}{
		{"sin producto", dto.CreateBatchRequest{BatchCode: "C-1", Location: "A-1-1", QuantityUnits: intPtr(1)}},
		{"sin código", dto.CreateBatchRequest{ProductName: "Sal", Location: "A-1-1", QuantityUnits: intPtr(1)}},
		{"sin celda", dto.CreateBatchRequest{ProductName: "Sal", BatchCode: "C-1", QuantityUnits: intPtr(1)}},
		{"unidades negativas", dto.CreateBatchRequest{ProductName: "Sal", BatchCode: "C-1", Location: "A-1-1", QuantityUnits: intPtr(-5)}},
		{"kg negativos", dto.CreateBatchRequest{ProductName: "Sal", BatchCode: "C-1", Location: "A-1-1", QuantityKg: kgPtr("-1")}},
		{"ambas medidas vacías", dto.CreateBatchRequest{ProductName: "Sal", BatchCode: "C-1", Location: "A-1-1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, testActor, tc.in)
			_, ok := domain.AsValidation(err)
			assert.True(t, ok, "debe retornar ValidationError")
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Retiros
// ──────────────────────────────────────────────────────────────────────────────

// Retiro parcial: resta, acumula y deja el lote ACTIVE con un OUT por llamada.
func TestWithdraw_Parcial(t *testing.T) {
	uc, s := newLifecycle(t)
	ctx := context.Background()

	b, err := uc.Create(ctx, testActor, dto.CreateBatchRequest{
		ProductName:   "Harina de trigo",
		BatchCode:     "HT-2024-001",
		Location:      "A-1-1",
		QuantityUnits: intPtr(100),
	})
	require.NoError(t, err)

	got, err := uc.Withdraw(ctx, testActor, b.ID, dto.WithdrawRequest{QuantityUnits: intPtr(30)})
	require.NoError(t, err)

	assert.Equal(t, int64(70), *got.QuantityUnits)
	assert.Equal(t, int64(30), got.RemovedUnits)
	assert.Equal(t, entity.BatchStatusActive, got.Status)
	assert.False(t, got.IsArchived)
	assert.Nil(t, got.RemovedAt)

	outs := s.movimientosDe(b.ID, entity.MovementTypeOUT)
	require.Len(t, outs, 1)
	assert.Equal(t, int64(30), outs[0].QuantityUnits)
}

// Retiro total: ambas medidas quedan exactamente en 0 y el lote pasa a REMOVED
// y archivado en la misma operación. El OUT final lleva lo pedido, no el total.
func TestWithdraw_TotalArchivaElLote(t *testing.T) {
	uc, s := newLifecycle(t)
	ctx := context.Background()

	b, err := uc.Create(ctx, testActor, dto.CreateBatchRequest{
		ProductName:   "Harina de trigo",
		BatchCode:     "HT-2024-001",
		Location:      "A-1-1",
		QuantityUnits: intPtr(100),
	})
	require.NoError(t, err)

	_, err = uc.Withdraw(ctx, testActor, b.ID, dto.WithdrawRequest{QuantityUnits: intPtr(30)})
	require.NoError(t, err)

	got, err := uc.Withdraw(ctx, testActor, b.ID, dto.WithdrawRequest{QuantityUnits: intPtr(70)})
	require.NoError(t, err)

	assert.Equal(t, entity.BatchStatusRemoved, got.Status)
	assert.True(t, got.IsArchived, "REMOVED y archivado se fijan juntos")
	assert.Equal(t, int64(0), *got.QuantityUnits)
	require.NotNil(t, got.QuantityKg, "la medida nunca registrada queda en 0 exacto al archivar")
	assert.True(t, got.QuantityKg.IsZero())
	require.NotNil(t, got.RemovedAt)
	require.NotNil(t, got.RemovedBy)
	assert.Equal(t, testActor, *got.RemovedBy)
	assert.Equal(t, int64(100), got.RemovedUnits)

	outs := s.movimientosDe(b.ID, entity.MovementTypeOUT)
	require.Len(t, outs, 2)
	assert.Equal(t, int64(70), outs[1].QuantityUnits,
		"el OUT final lleva la cantidad pedida en la llamada, no la acumulada")
}

// Un lote archivado no admite más retiros.
func TestWithdraw_LoteArchivadoRechazado(t *testing.T) {
	uc, _ := newLifecycle(t)
	ctx := context.Background()

	b, err := uc.Create(ctx, testActor, dto.CreateBatchRequest{
		ProductName:   "Harina de trigo",
		BatchCode:     "HT-2024-001",
		Location:      "A-1-1",
		QuantityUnits: intPtr(100),
	})
	require.NoError(t, err)

	_, err = uc.Withdraw(ctx, testActor, b.ID, dto.WithdrawRequest{QuantityUnits: intPtr(100)})
	require.NoError(t, err)

	_, err = uc.Withdraw(ctx, testActor, b.ID, dto.WithdrawRequest{QuantityUnits: intPtr(1)})
	assert.ErrorIs(t, err, domain.ErrBatchArchived)
}

// Retirar más de lo disponible en una medida se rechaza sin tocar el estado.
func TestWithdraw_ExcesoRechazadoSinCambios(t *testing.T) {
	uc, s := newLifecycle(t)
	ctx := context.Background()

	b, err := uc.Create(ctx, testActor, dto.CreateBatchRequest{
		ProductName: "Aceite",
		BatchCode:   "AC-001",
		Location:    "C-3-2",
		QuantityKg:  kgPtr("50"),
	})
	require.NoError(t, err)

	_, err = uc.Withdraw(ctx, testActor, b.ID, dto.WithdrawRequest{QuantityKg: kgPtr("60")})
	v, ok := domain.AsValidation(err)
	require.True(t, ok, "exceso debe ser ValidationError")
	assert.Contains(t, v.Message, "entre 0 y 50", "el mensaje debe incluir el rango válido")

	stored := s.batches[b.ID]
	assert.True(t, stored.QuantityKg.Equal(decimal.NewFromInt(50)), "el lote no debe cambiar")
	assert.True(t, stored.RemovedKg.IsZero())
	assert.Empty(t, s.movimientosDe(b.ID, entity.MovementTypeOUT), "no debe registrarse OUT")
}

// Cada medida se valida contra sí misma: el exceso en una no se compensa con la otra.
func TestWithdraw_MedidasIndependientes(t *testing.T) {
	uc, _ := newLifecycle(t)
	ctx := context.Background()

	b, err := uc.Create(ctx, testActor, dto.CreateBatchRequest{
		ProductName:   "Arroz",
		BatchCode:     "AR-001",
		Location:      "A-2-2",
		QuantityUnits: intPtr(10),
		QuantityKg:    kgPtr("100"),
	})
	require.NoError(t, err)

	_, err = uc.Withdraw(ctx, testActor, b.ID, dto.WithdrawRequest{
		QuantityUnits: intPtr(11),
		QuantityKg:    kgPtr("1"),
	})
	_, ok := domain.AsValidation(err)
	assert.True(t, ok, "exceso en unidades debe rechazar todo el retiro")
}

// Sobre una medida sin seguimiento (nil) cualquier cantidad >= 0 es válida y
// solo acumula en lo retirado.
func TestWithdraw_MedidaSinSeguimiento(t *testing.T) {
	uc, _ := newLifecycle(t)
	ctx := context.Background()

	b, err := uc.Create(ctx, testActor, dto.CreateBatchRequest{
		ProductName: "Azúcar",
		BatchCode:   "AZ-001",
		Location:    "B-2-3",
		QuantityKg:  kgPtr("10"),
	})
	require.NoError(t, err)

	got, err := uc.Withdraw(ctx, testActor, b.ID, dto.WithdrawRequest{QuantityUnits: intPtr(500)})
	require.NoError(t, err, "unidades sin seguimiento no tienen tope")
	assert.Equal(t, int64(500), got.RemovedUnits)
	assert.Equal(t, entity.BatchStatusActive, got.Status,
		"los kg siguen positivos: el lote no se archiva")
	assert.True(t, got.QuantityKg.Equal(decimal.NewFromInt(10)))

	got, err = uc.Withdraw(ctx, testActor, b.ID, dto.WithdrawRequest{QuantityKg: kgPtr("10")})
	require.NoError(t, err)
	assert.Equal(t, entity.BatchStatusRemoved, got.Status,
		"con los kg agotados y las unidades sin seguimiento el lote queda agotado")
}

func TestWithdraw_SinCantidades(t *testing.T) {
	uc, _ := newLifecycle(t)
	_, err := uc.Withdraw(context.Background(), testActor, "cualquiera", dto.WithdrawRequest{})
	_, ok := domain.AsValidation(err)
	assert.True(t, ok)
}

func TestWithdraw_LoteInexistente(t *testing.T) {
	uc, _ := newLifecycle(t)
	_, err := uc.Withdraw(context.Background(), testActor, "no-existe", dto.WithdrawRequest{
		QuantityUnits: intPtr(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Conciliación con la bitácora
// ──────────────────────────────────────────────────────────────────────────────

// Tras cualquier secuencia de retiros, IN - OUT de la bitácora debe coincidir
// con las existencias restantes del lote.
func TestBitacora_ConciliaConExistencias(t *testing.T) {
	uc, s := newLifecycle(t)
	ctx := context.Background()

	b, err := uc.Create(ctx, testActor, dto.CreateBatchRequest{
		ProductName:   "Harina de trigo",
		BatchCode:     "HT-2024-001",
		Location:      "A-1-1",
		QuantityUnits: intPtr(100),
		QuantityKg:    kgPtr("80"),
	})
	require.NoError(t, err)

	for _, w := range []dto.WithdrawRequest{
		{QuantityUnits: intPtr(30)},
		{QuantityKg: kgPtr("12.5")},
		{QuantityUnits: intPtr(20), QuantityKg: kgPtr("7.5")},
	} {
		_, err := uc.Withdraw(ctx, testActor, b.ID, w)
		require.NoError(t, err)
	}

	var units int64
	kg := decimal.Zero
	for _, m := range s.movimientosDe(b.ID, entity.MovementTypeIN) {
		units += m.QuantityUnits
		kg = kg.Add(m.QuantityKg)
	}
	for _, m := range s.movimientosDe(b.ID, entity.MovementTypeOUT) {
		units -= m.QuantityUnits
		kg = kg.Sub(m.QuantityKg)
	}

	stored := s.batches[b.ID]
	assert.Equal(t, *stored.QuantityUnits, units, "IN - OUT debe dar las unidades restantes")
	assert.True(t, stored.QuantityKg.Equal(kg), "IN - OUT debe dar los kg restantes")
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestList_OcultaLotesSinExistencias(t *testing.T) {
	uc, _ := newLifecycle(t)
	ctx := context.Background()

	b1, err := uc.Create(ctx, testActor, dto.CreateBatchRequest{
		ProductName: "Con stock", BatchCode: "S-1", Location: "A-1-1", QuantityUnits: intPtr(5),
	})
	require.NoError(t, err)
	b2, err := uc.Create(ctx, testActor, dto.CreateBatchRequest{
		ProductName: "Agotado", BatchCode: "S-2", Location: "A-1-2", QuantityUnits: intPtr(3),
	})
	require.NoError(t, err)
	_, err = uc.Withdraw(ctx, testActor, b2.ID, dto.WithdrawRequest{QuantityUnits: intPtr(3)})
	require.NoError(t, err)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b1.ID, list[0].ID)
}

func TestGetByCode_SumaLotesActivos(t *testing.T) {
	uc, _ := newLifecycle(t)
	ctx := context.Background()

	for _, q := range []int64{10, 15} {
		_, err := uc.Create(ctx, testActor, dto.CreateBatchRequest{
			ProductName: "Harina de trigo", BatchCode: "HT-001", Location: "A-1-1",
			QuantityUnits: intPtr(q),
		})
		require.NoError(t, err)
	}

	resp, err := uc.GetByCode(ctx, "HT-001")
	require.NoError(t, err)
	assert.Equal(t, int64(25), resp.QuantityUnits)
	assert.Len(t, resp.Items, 2)

	_, err = uc.GetByCode(ctx, "NO-EXISTE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
