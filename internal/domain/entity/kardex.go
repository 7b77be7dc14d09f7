package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del kardex.
const (
	MovementCOMPRA     = "COMPRA"     // compra a proveedor (entrada)
	MovementVENTA      = "VENTA"      // venta a cliente (salida)
	MovementDEVOLUCION = "DEVOLUCION" // devolución de cliente (entrada)
	MovementAJUSTE     = "AJUSTE"     // ajuste manual de inventario
)

// KardexMovement es una fila del kardex de una variante. In/Out son enteros no
// negativos y normalmente solo uno de los dos es distinto de cero. Values se
// persiste para VENTA/DEVOLUCION multi-moneda; un AJUSTE nunca trae Values.
// Los movimientos son inmutables una vez leídos y llegan en orden cronológico:
// el FinalStock del índice i debe derivarse del índice i-1.
type KardexMovement struct {
	Date       time.Time        `json:"date"`
	Type       string           `json:"type"`
	In         int64            `json:"in"`
	Out        int64            `json:"out"`
	FinalStock int64            `json:"final_stock"`
	UnitCost   *decimal.Decimal `json:"unit_cost,omitempty"`
	TotalCost  *decimal.Decimal `json:"total_cost,omitempty"`
	Values     []CurrencyValue  `json:"values,omitempty"`
	Reference  string           `json:"reference,omitempty"`
}

// HasValues indica si el movimiento trae valores por moneda persistidos.
func (m KardexMovement) HasValues() bool { return len(m.Values) > 0 }

// IsSaleOrReturn indica si el movimiento es VENTA o DEVOLUCION.
func (m KardexMovement) IsSaleOrReturn() bool {
	return m.Type == MovementVENTA || m.Type == MovementDEVOLUCION
}

// KardexVariantSummary es el resumen persistido del kardex de una variante.
// PeriodInitialStock, cuando viene, sustituye a InitialStock como línea base de
// una vista filtrada por fechas; lo calcula la capa de datos, no el motor, pero
// el motor debe preferirlo siempre que esté presente.
type KardexVariantSummary struct {
	InitialStock          int64           `json:"initial_stock"`
	PeriodInitialStock    *int64          `json:"period_initial_stock,omitempty"`
	TotalIn               int64           `json:"total_in"`
	TotalOut              int64           `json:"total_out"`
	FinalStock            int64           `json:"final_stock"`
	AvgUnitCost           decimal.Decimal `json:"avg_unit_cost"`
	TotalValuesByCurrency []CurrencyValue `json:"total_values_by_currency,omitempty"`
}

// VariantPrice es el precio vigente de una variante en una moneda, tomado de la
// lista de precios del producto (insumo de la valorización al vuelo).
type VariantPrice struct {
	CurrencyID string           `json:"currency_id"`
	Price      decimal.Decimal  `json:"price"`
	Currency   *CurrencyRef     `json:"currency,omitempty"`
}

// KardexVariant es el kardex completo de una variante: movimientos más resumen.
// El motor nunca lo muta; es un snapshot de solo lectura por consulta.
type KardexVariant struct {
	ID        string               `json:"id"`
	SKU       string               `json:"sku,omitempty"`
	Name      string               `json:"name"`
	Summary   KardexVariantSummary `json:"summary"`
	Movements []KardexMovement     `json:"movements"`
	Prices    []VariantPrice       `json:"prices,omitempty"`
}

// ProductInfo identifica el producto dueño de las variantes.
type ProductInfo struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
}

// KardexProduct agrupa las variantes de un producto para una página de consulta.
type KardexProduct struct {
	Product  ProductInfo     `json:"product"`
	Variants []KardexVariant `json:"variants"`
}
