package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/kardex"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// KardexFilter filtros de consulta del kardex (query params del listado).
// CurrencyID es la moneda seleccionada para valorizar y agregar ventas;
// Currencies es el filtro de monedas sobre los movimientos (son cosas
// distintas: la segunda recorta la vista y por tanto omite la validación).
type KardexFilter struct {
	StartDate     *time.Time
	EndDate       *time.Time
	Categories    []string
	MovementTypes []string
	Currencies    []string
	CurrencyID    string
	Search        string
	SortBy        string
	SortOrder     string
	Page          int
	Limit         int
}

// Defaults aplica valores por defecto de paginación.
func (f *KardexFilter) Defaults() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
}

// HasDateFilter indica si la vista está filtrada por rango de fechas.
func (f KardexFilter) HasDateFilter() bool { return f.StartDate != nil || f.EndDate != nil }

// HasTypeFilter indica si la vista está recortada por tipos de movimiento.
func (f KardexFilter) HasTypeFilter() bool { return len(f.MovementTypes) > 0 }

// HasCurrencyFilter indica si la vista está recortada por monedas.
func (f KardexFilter) HasCurrencyFilter() bool { return len(f.Currencies) > 0 }

// ToQuery traduce el filtro HTTP al query del puerto de datos.
func (f KardexFilter) ToQuery() repository.KardexQuery {
	return repository.KardexQuery{
		StartDate:     f.StartDate,
		EndDate:       f.EndDate,
		Categories:    f.Categories,
		MovementTypes: f.MovementTypes,
		Currencies:    f.Currencies,
		Search:        f.Search,
		SortBy:        f.SortBy,
		SortOrder:     f.SortOrder,
		Page:          f.Page,
		Limit:         f.Limit,
	}
}

// VariantViewDTO vista derivada de una variante: lo que el motor calcula por
// encima del snapshot (stock inicial efectivo, validación, valor resuelto,
// ventas netas). ValueIsOnTheFly se expone siempre de forma explícita: las
// cifras al vuelo no están validadas contra el libro.
type VariantViewDTO struct {
	VariantID             string                      `json:"variant_id"`
	SKU                   string                      `json:"sku,omitempty"`
	Name                  string                      `json:"name"`
	EffectiveInitialStock int64                       `json:"effective_initial_stock"`
	PeriodAdjusted        bool                        `json:"period_adjusted"`
	Validation            kardex.ValidationResult     `json:"validation"`
	ValidationSkipped     bool                        `json:"validation_skipped"`
	ResolvedValue         *entity.CurrencyValue       `json:"resolved_value,omitempty"`
	ValueIsOnTheFly       bool                        `json:"value_is_on_the_fly"`
	CurrencySymbol        string                      `json:"currency_symbol"`
	NetSales              decimal.Decimal             `json:"net_sales"`
	Summary               entity.KardexVariantSummary `json:"summary"`
	Movements             []entity.KardexMovement     `json:"movements"`
}

// ProductViewDTO producto con sus vistas derivadas por variante.
type ProductViewDTO struct {
	Product  entity.ProductInfo `json:"product"`
	Variants []VariantViewDTO   `json:"variants"`
}

// KardexResponse respuesta del listado del kardex.
type KardexResponse struct {
	Data       []ProductViewDTO `json:"data"`
	Pagination Pagination       `json:"pagination"`
}
