package entity

import "github.com/shopspring/decimal"

// CurrencyRef identifica una moneda. ID es la clave estable; Code y Symbol
// son solo de presentación y se devuelven exactamente como llegan de la fuente.
type CurrencyRef struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
}

// CurrencyValue es un monto expresado en una moneda concreta.
// ExchangeRate == 1.0 marca la moneda base del kardex; a lo sumo una entrada
// de cualquier lista puede llevar esa marca. TotalValue/TotalCost son no
// negativos salvo que provengan de una resta por DEVOLUCION.
type CurrencyValue struct {
	Currency     CurrencyRef      `json:"currency"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
	TotalCost    *decimal.Decimal `json:"total_cost,omitempty"`
	TotalValue   *decimal.Decimal `json:"total_value,omitempty"`
	ExchangeRate *decimal.Decimal `json:"exchange_rate,omitempty"`
}

var rateOne = decimal.NewFromInt(1)

// IsBase indica si el valor está expresado en la moneda base del kardex.
func (v CurrencyValue) IsBase() bool {
	return v.ExchangeRate != nil && v.ExchangeRate.Equal(rateOne)
}
