package kardex

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// ValueFromStock calcula una valorización sintética (stock × precio de lista)
// para cuando la variante no tiene valores por moneda persistidos. Mantiene la
// cantidad mostrada (derivada del kardex) como autoritativa y toma el precio de
// la lista de precios del producto, no de la cantidad de inventario, para no
// contradecir el libro.
//
// Reglas:
//   - prices vacío o finalStock < 0: lista vacía (un stock negativo jamás se
//     valoriza en silencio).
//   - acceptedCurrencyIDs no vacío: solo se valorizan los precios de ese conjunto.
//   - cada precio restante emite {Currency, TotalValue: finalStock × price};
//     sin UnitCost ni TotalCost, porque es una foto a la fecha, no un movimiento
//     costeado.
func ValueFromStock(finalStock int64, prices []entity.VariantPrice, acceptedCurrencyIDs []string) []entity.CurrencyValue {
	out := make([]entity.CurrencyValue, 0, len(prices))
	if len(prices) == 0 || finalStock < 0 {
		return out
	}

	var accepted map[string]bool
	if len(acceptedCurrencyIDs) > 0 {
		accepted = make(map[string]bool, len(acceptedCurrencyIDs))
		for _, id := range acceptedCurrencyIDs {
			accepted[id] = true
		}
	}

	stock := decimal.NewFromInt(finalStock)
	for _, p := range prices {
		if accepted != nil && !accepted[p.CurrencyID] {
			continue
		}
		ref := entity.CurrencyRef{ID: p.CurrencyID}
		if p.Currency != nil {
			ref = *p.Currency
		}
		total := stock.Mul(p.Price)
		out = append(out, entity.CurrencyValue{Currency: ref, TotalValue: &total})
	}
	return out
}

// IsOnTheFly indica si la valorización del resumen tendrá que calcularse al
// vuelo: verdadero si y solo si TotalValuesByCurrency está ausente o vacío.
// Una entrada única con valor cero cuenta como presente. Todo consumidor debe
// exponer esta condición explícitamente, porque las cifras al vuelo no se
// validan contra las fórmulas del kardex.
func IsOnTheFly(summary entity.KardexVariantSummary) bool {
	return len(summary.TotalValuesByCurrency) == 0
}
