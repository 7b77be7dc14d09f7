// Package kardex (aplicación) compone el motor de dominio para producir la
// vista derivada por variante que consume la capa de presentación.
package kardex

import (
	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/kardex"
)

// DeriveOptions entrada de la derivación: moneda seleccionada y qué filtros
// están activos en la vista del caller. Son funciones puras de sus inputs;
// el caller memoiza contra los inputs que cambien.
type DeriveOptions struct {
	CurrencyID          string
	HasTypeFilter       bool
	HasCurrencyFilter   bool
	AcceptedCurrencyIDs []string
}

// OptionsFromFilter traduce el filtro HTTP a opciones de derivación.
func OptionsFromFilter(f dto.KardexFilter) DeriveOptions {
	return DeriveOptions{
		CurrencyID:          f.CurrencyID,
		HasTypeFilter:       f.HasTypeFilter(),
		HasCurrencyFilter:   f.HasCurrencyFilter(),
		AcceptedCurrencyIDs: f.Currencies,
	}
}

// DeriveUseCase deriva, por variante: stock inicial efectivo, resultado de
// validación, valor resuelto en la moneda seleccionada (con fallback al vuelo)
// y ventas netas.
type DeriveUseCase struct{}

// NewDeriveUseCase construye el caso de uso.
func NewDeriveUseCase() *DeriveUseCase { return &DeriveUseCase{} }

// DeriveVariant calcula la vista derivada de una variante.
//
// La validación se omite (resultado vacuamente válido) cuando la vista está
// recortada por filtro de tipo de movimiento o de moneda: la fórmula de
// conservación se define sobre la secuencia completa y una vista parcial la
// incumple legítimamente. El filtro por fechas no omite, porque
// PeriodInitialStock mantiene la fórmula válida bajo ese recorte.
func (uc *DeriveUseCase) DeriveVariant(variant entity.KardexVariant, opts DeriveOptions) dto.VariantViewDTO {
	initial, periodAdjusted := kardex.EffectiveInitialStock(variant.Summary)

	skip := opts.HasTypeFilter || opts.HasCurrencyFilter
	var validation kardex.ValidationResult
	if skip {
		validation = kardex.ValidResult()
	} else {
		validation = kardex.Validate(variant)
	}

	// Valorización: la persistida si existe; si no, al vuelo desde la lista de
	// precios, siempre señalada como tal (nunca se sustituye en silencio).
	values := variant.Summary.TotalValuesByCurrency
	onTheFly := kardex.IsOnTheFly(variant.Summary)
	if onTheFly {
		values = kardex.ValueFromStock(variant.Summary.FinalStock, variant.Prices, opts.AcceptedCurrencyIDs)
	}

	return dto.VariantViewDTO{
		VariantID:             variant.ID,
		SKU:                   variant.SKU,
		Name:                  variant.Name,
		EffectiveInitialStock: initial,
		PeriodAdjusted:        periodAdjusted,
		Validation:            validation,
		ValidationSkipped:     skip,
		ResolvedValue:         kardex.ResolveCurrencyValue(values, opts.CurrencyID),
		ValueIsOnTheFly:       onTheFly,
		CurrencySymbol:        kardex.SymbolFor(values, opts.CurrencyID),
		NetSales:              kardex.NetSales(variant.Movements, opts.CurrencyID),
		Summary:               variant.Summary,
		Movements:             variant.Movements,
	}
}

// DeriveProducts mapea la derivación sobre una página de productos.
func (uc *DeriveUseCase) DeriveProducts(products []entity.KardexProduct, opts DeriveOptions) []dto.ProductViewDTO {
	out := make([]dto.ProductViewDTO, 0, len(products))
	for _, p := range products {
		view := dto.ProductViewDTO{
			Product:  p.Product,
			Variants: make([]dto.VariantViewDTO, 0, len(p.Variants)),
		}
		for _, v := range p.Variants {
			view.Variants = append(view.Variants, uc.DeriveVariant(v, opts))
		}
		out = append(out, view)
	}
	return out
}
