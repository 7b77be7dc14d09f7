package kardex

import "github.com/jhoicas/kardex-api/internal/domain/entity"

// EffectiveInitialStock devuelve el stock inicial contra el que se evalúa el
// kardex de la variante: el del período (PeriodInitialStock) cuando la vista
// está filtrada por fechas, si no el histórico. El booleano indica si se
// aplicó la sustitución de período, para que el validador redacte las
// advertencias contra la línea base correcta.
//
// PeriodInitialStock lo calcula la capa de datos a partir de los movimientos
// anteriores a la ventana; este motor solo lo prefiere cuando está presente.
func EffectiveInitialStock(summary entity.KardexVariantSummary) (int64, bool) {
	if summary.PeriodInitialStock != nil {
		return *summary.PeriodInitialStock, true
	}
	return summary.InitialStock, false
}
