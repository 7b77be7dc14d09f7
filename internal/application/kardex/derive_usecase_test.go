package kardex_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appkardex "github.com/jhoicas/kardex-api/internal/application/kardex"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	domkardex "github.com/jhoicas/kardex-api/internal/domain/kardex"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func int64Ptr(v int64) *int64 { return &v }

// variante inconsistente a propósito: la fórmula de conservación no cierra
// (0 + 10 - 5 = 5, pero FinalStock = 7), así que el validador debe reportar
// salvo que la derivación decida omitirlo. Los movimientos sí son coherentes
// entre sí para que ningún otro código dispare.
func brokenVariant() entity.KardexVariant {
	return entity.KardexVariant{
		ID:   "var-1",
		SKU:  "SKU-001",
		Name: "Tornillo 1/4",
		Movements: []entity.KardexMovement{
			{Type: entity.MovementCOMPRA, In: 10, Out: 0, FinalStock: 10, UnitCost: decPtr("100"), TotalCost: decPtr("1000")},
			{Type: entity.MovementVENTA, In: 0, Out: 5, FinalStock: 5, UnitCost: decPtr("100"), TotalCost: decPtr("500"), Values: []entity.CurrencyValue{{
				Currency:     entity.CurrencyRef{ID: "cop", Code: "COP", Symbol: "$"},
				TotalCost:    decPtr("500"),
				ExchangeRate: decPtr("1"),
			}}},
		},
		Summary: entity.KardexVariantSummary{
			InitialStock: 0,
			TotalIn:      10,
			TotalOut:     5,
			FinalStock:   7,
			AvgUnitCost:  dec("100"),
			TotalValuesByCurrency: []entity.CurrencyValue{{
				Currency:     entity.CurrencyRef{ID: "cop", Code: "COP", Symbol: "$"},
				TotalValue:   decPtr("700"),
				ExchangeRate: decPtr("1"),
			}},
		},
	}
}

func TestDeriveVariant_SinFiltros_Valida(t *testing.T) {
	uc := appkardex.NewDeriveUseCase()

	view := uc.DeriveVariant(brokenVariant(), appkardex.DeriveOptions{})

	assert.False(t, view.ValidationSkipped)
	assert.False(t, view.Validation.IsValid, "la variante rota debe reportarse")
	require.NotEmpty(t, view.Validation.Issues)
	assert.Equal(t, domkardex.CodeStockFormulaMismatch, view.Validation.Issues[0].Code)
}

func TestDeriveVariant_FiltroDeTipo_OmiteValidacion(t *testing.T) {
	uc := appkardex.NewDeriveUseCase()

	view := uc.DeriveVariant(brokenVariant(), appkardex.DeriveOptions{HasTypeFilter: true})

	assert.True(t, view.ValidationSkipped)
	assert.True(t, view.Validation.IsValid, "una vista parcial por tipo es vacuamente válida")
	assert.Empty(t, view.Validation.Issues)
}

func TestDeriveVariant_FiltroDeMoneda_OmiteValidacion(t *testing.T) {
	uc := appkardex.NewDeriveUseCase()

	view := uc.DeriveVariant(brokenVariant(), appkardex.DeriveOptions{HasCurrencyFilter: true})

	assert.True(t, view.ValidationSkipped)
	assert.True(t, view.Validation.IsValid)
}

func TestDeriveVariant_FiltroDeFechas_NoOmite(t *testing.T) {
	// El filtro por fechas no recorta la fórmula: PeriodInitialStock la
	// mantiene válida, así que la validación corre normal.
	uc := appkardex.NewDeriveUseCase()
	v := brokenVariant()
	v.Summary.PeriodInitialStock = int64Ptr(2)

	view := uc.DeriveVariant(v, appkardex.DeriveOptions{})

	assert.False(t, view.ValidationSkipped)
	assert.True(t, view.PeriodAdjusted)
	assert.Equal(t, int64(2), view.EffectiveInitialStock)
	assert.True(t, view.Validation.IsValid, "2 + 10 - 5 = 7 cierra con el inicial del período")
}

func TestDeriveVariant_ValoresPersistidos(t *testing.T) {
	uc := appkardex.NewDeriveUseCase()

	view := uc.DeriveVariant(brokenVariant(), appkardex.DeriveOptions{CurrencyID: "cop"})

	assert.False(t, view.ValueIsOnTheFly)
	require.NotNil(t, view.ResolvedValue)
	assert.True(t, view.ResolvedValue.TotalValue.Equal(dec("700")))
	assert.Equal(t, "$", view.CurrencySymbol)
}

func TestDeriveVariant_ValoracionAlVuelo(t *testing.T) {
	uc := appkardex.NewDeriveUseCase()
	v := entity.KardexVariant{
		ID: "var-2",
		Summary: entity.KardexVariantSummary{
			InitialStock: 0,
			TotalIn:      6,
			TotalOut:     0,
			FinalStock:   6,
			AvgUnitCost:  dec("10.50"),
		},
		Prices: []entity.VariantPrice{{
			CurrencyID: "usd",
			Price:      dec("10.50"),
			Currency:   &entity.CurrencyRef{ID: "usd", Code: "USD", Symbol: "US$"},
		}},
	}

	view := uc.DeriveVariant(v, appkardex.DeriveOptions{CurrencyID: "usd"})

	assert.True(t, view.ValueIsOnTheFly, "sin valores persistidos la valoración es al vuelo")
	require.NotNil(t, view.ResolvedValue)
	require.NotNil(t, view.ResolvedValue.TotalValue)
	assert.True(t, view.ResolvedValue.TotalValue.Equal(dec("63.00")))
	assert.Nil(t, view.ResolvedValue.UnitCost, "al vuelo solo se emite TotalValue")
	assert.Equal(t, "US$", view.CurrencySymbol)
}

func TestDeriveVariant_AlVuelo_RespetaMonedasAceptadas(t *testing.T) {
	uc := appkardex.NewDeriveUseCase()
	v := entity.KardexVariant{
		Summary: entity.KardexVariantSummary{InitialStock: 0, TotalIn: 2, TotalOut: 0, FinalStock: 2},
		Prices: []entity.VariantPrice{
			{CurrencyID: "usd", Price: dec("10"), Currency: &entity.CurrencyRef{ID: "usd"}},
			{CurrencyID: "eur", Price: dec("9"), Currency: &entity.CurrencyRef{ID: "eur"}},
		},
	}

	view := uc.DeriveVariant(v, appkardex.DeriveOptions{
		CurrencyID:          "eur",
		HasCurrencyFilter:   true,
		AcceptedCurrencyIDs: []string{"eur"},
	})

	require.NotNil(t, view.ResolvedValue)
	assert.Equal(t, "eur", view.ResolvedValue.Currency.ID)
	assert.True(t, view.ResolvedValue.TotalValue.Equal(dec("18")))
}

func TestDeriveVariant_VentasNetas(t *testing.T) {
	uc := appkardex.NewDeriveUseCase()
	v := brokenVariant()
	v.Movements = []entity.KardexMovement{
		{Type: entity.MovementVENTA, TotalCost: decPtr("100")},
		{Type: entity.MovementDEVOLUCION, TotalCost: decPtr("40")},
		{Type: entity.MovementCOMPRA, TotalCost: decPtr("999")},
	}

	view := uc.DeriveVariant(v, appkardex.DeriveOptions{})

	assert.True(t, view.NetSales.Equal(dec("60")))
}

func TestDeriveProducts_MapeaTodasLasVariantes(t *testing.T) {
	uc := appkardex.NewDeriveUseCase()
	products := []entity.KardexProduct{{
		Product:  entity.ProductInfo{ID: "prod-1", Name: "Tornillería"},
		Variants: []entity.KardexVariant{brokenVariant(), brokenVariant()},
	}}

	views := uc.DeriveProducts(products, appkardex.DeriveOptions{})

	require.Len(t, views, 1)
	assert.Len(t, views[0].Variants, 2)
	assert.Equal(t, "prod-1", views[0].Product.ID)
}
