package kardex

import "github.com/jhoicas/kardex-api/internal/domain/entity"

// ResolveCurrencyValue selecciona de forma determinista un valor de la lista
// según la moneda objetivo:
//   - lista vacía: nil.
//   - targetCurrencyID dado: la primera entrada con ese currency.id, o nil si
//     no está (sin fallback implícito a otra moneda; el caller que quiera un
//     default debe pasarlo).
//   - sin objetivo (""): la entrada marcada como base (ExchangeRate == 1.0) si
//     existe, si no la primera de la lista.
//
// Devuelve un puntero a la entrada dentro del slice recibido; no copia.
func ResolveCurrencyValue(values []entity.CurrencyValue, targetCurrencyID string) *entity.CurrencyValue {
	if len(values) == 0 {
		return nil
	}
	if targetCurrencyID != "" {
		for i := range values {
			if values[i].Currency.ID == targetCurrencyID {
				return &values[i]
			}
		}
		return nil
	}
	for i := range values {
		if values[i].IsBase() {
			return &values[i]
		}
	}
	return &values[0]
}

// SymbolFor aplica la misma selección que ResolveCurrencyValue y devuelve el
// símbolo de la moneda. Si no hay coincidencia devuelve "$": es un fallback
// exclusivamente de presentación, nunca se usa para cálculo.
func SymbolFor(values []entity.CurrencyValue, targetCurrencyID string) string {
	v := ResolveCurrencyValue(values, targetCurrencyID)
	if v == nil {
		return "$"
	}
	return v.Currency.Symbol
}
