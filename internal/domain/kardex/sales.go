package kardex

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// NetSales calcula las ventas netas de una lista de movimientos en la moneda
// objetivo: VENTA suma su TotalCost, DEVOLUCION lo resta y el resto de tipos
// aporta cero. El total puede ser negativo si las devoluciones superan a las
// ventas en la ventana observada; eso es válido y no se recorta.
//
// Resolución de moneda por movimiento:
//   - sin Values: se usa directamente el TotalCost propio del movimiento (no
//     hay conversión posible).
//   - con Values: la misma regla de ResolveCurrencyValue, pero si la moneda
//     pedida no está en la lista se toma la primera entrada en lugar de
//     descartar. Un total de ventas nunca debe perder un movimiento por
//     desajuste de moneda, aunque eso implique reportar en una moneda
//     inesperada; el resolver genérico, en cambio, devuelve nil en ese caso.
func NetSales(movements []entity.KardexMovement, targetCurrencyID string) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		if !m.IsSaleOrReturn() {
			continue
		}
		amount := saleAmount(m, targetCurrencyID)
		if m.Type == entity.MovementVENTA {
			total = total.Add(amount)
		} else {
			total = total.Sub(amount)
		}
	}
	return total
}

// saleAmount resuelve el monto de un movimiento contribuyente.
func saleAmount(m entity.KardexMovement, targetCurrencyID string) decimal.Decimal {
	if !m.HasValues() {
		if m.TotalCost != nil {
			return *m.TotalCost
		}
		return decimal.Zero
	}
	v := ResolveCurrencyValue(m.Values, targetCurrencyID)
	if v == nil {
		v = &m.Values[0]
	}
	if v.TotalCost != nil {
		return *v.TotalCost
	}
	return decimal.Zero
}
