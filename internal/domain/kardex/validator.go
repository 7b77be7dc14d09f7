package kardex

import (
	"fmt"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// Validate recorre el kardex completo de una variante y verifica la fórmula de
// conservación del stock, la continuidad por movimiento y los totales
// agregados. Es determinista y total: ningún input la hace fallar; toda
// inconsistencia detectada se reporta como Issue o Warning estructurado.
//
// Política del caller: si la vista de movimientos está recortada por un filtro
// de tipo de movimiento o de moneda, la validación debe OMITIRSE (usar
// ValidResult), porque la fórmula de conservación se define sobre la secuencia
// completa y una vista parcial la incumple legítimamente. El filtro por fechas
// está exento: PeriodInitialStock existe precisamente para mantener la fórmula
// válida bajo ese filtro.
func Validate(variant entity.KardexVariant) ValidationResult {
	issues := make([]Issue, 0, 4)
	warnings := make([]Warning, 0, 4)
	s := variant.Summary

	initial, periodAdjusted := EffectiveInitialStock(s)

	// Fórmula de conservación: inicial + entradas - salidas = final.
	calculatedFinal := initial + s.TotalIn - s.TotalOut
	if calculatedFinal != s.FinalStock {
		issues = append(issues, newIssue(CodeStockFormulaMismatch,
			initial, s.TotalIn, s.TotalOut, calculatedFinal, s.FinalStock))

		// Stock inicial que haría cuadrar la fórmula; solo se sugiere si es plausible.
		correctInitial := s.FinalStock - s.TotalIn + s.TotalOut
		if correctInitial != initial && correctInitial >= 0 {
			if periodAdjusted {
				warnings = append(warnings, Warning{
					Type: WarningSync,
					Message: fmt.Sprintf(
						"el stock inicial del período (%d) no cuadra con los totales; el valor consistente sería %d",
						initial, correctInitial),
					Suggestion: "revisar los movimientos anteriores al período filtrado: el stock inicial del período debe igualar el saldo final previo al rango",
				})
			} else {
				warnings = append(warnings, Warning{
					Type: WarningSync,
					Message: fmt.Sprintf(
						"el stock inicial (%d) no cuadra con los totales; el valor consistente sería %d",
						initial, correctInitial),
					Suggestion: fmt.Sprintf(
						"aplicar una corrección de stock inicial a %d mediante el flujo de reajuste de inventario",
						correctInitial),
				})
			}
		}
	}

	// Totales recalculados desde los movimientos.
	var sumIn, sumOut int64
	for _, m := range variant.Movements {
		sumIn += m.In
		sumOut += m.Out
	}
	if sumIn != s.TotalIn {
		issues = append(issues, newIssue(CodeTotalInMismatch, sumIn, s.TotalIn))
	}
	if sumOut != s.TotalOut {
		issues = append(issues, newIssue(CodeTotalOutMismatch, sumOut, s.TotalOut))
	}

	// Continuidad secuencial: el saldo de cada movimiento debe derivarse del anterior.
	for i := 1; i < len(variant.Movements); i++ {
		m := variant.Movements[i]
		expected := variant.Movements[i-1].FinalStock + m.In - m.Out
		if expected != m.FinalStock {
			// Posición 1-based en el mensaje.
			issues = append(issues, newIssue(CodeMovementStockInconsistent, i+1, expected, m.FinalStock))
		}
	}

	// Completitud de datos: ventas y devoluciones sin valores por moneda persistidos.
	for i, m := range variant.Movements {
		if m.IsSaleOrReturn() && !m.HasValues() {
			warnings = append(warnings, Warning{
				Type: WarningData,
				Message: fmt.Sprintf(
					"el movimiento %d (%s) no tiene valores por moneda persistidos; su valor se calcula al vuelo",
					i+1, m.Type),
				Suggestion: "persistir los valores corregidos del movimiento para fijar su valorización",
			})
		}
	}

	// Resumen sin valorización persistida (independiente del chequeo por movimiento).
	if IsOnTheFly(s) {
		warnings = append(warnings, Warning{
			Type:       WarningCalculation,
			Message:    "el resumen no tiene valorización por moneda persistida; el valor de la variante se calcula al vuelo desde la lista de precios",
			Suggestion: "ejecutar el proceso de valorización para persistir los totales por moneda",
		})
	}

	// Cotas de sanidad sobre el resumen.
	if s.AvgUnitCost.IsNegative() {
		issues = append(issues, newIssue(CodeNegativeAvgUnitCost, s.AvgUnitCost.String()))
	}
	if s.FinalStock < 0 {
		issues = append(issues, newIssue(CodeNegativeStock, s.FinalStock))
	}
	if initial < 0 {
		issues = append(issues, newIssue(CodeNegativeInitialStock, initial))
	}

	return ValidationResult{IsValid: len(issues) == 0, Issues: issues, Warnings: warnings}
}

// ValidateMovement valida un movimiento aislado contra el saldo previo, para
// escenarios incrementales o de streaming: continuidad del saldo, cantidades
// no negativas y costo unitario positivo en VENTA/DEVOLUCION.
func ValidateMovement(m entity.KardexMovement, previousStock int64) []Issue {
	issues := make([]Issue, 0, 2)

	if m.In < 0 || m.Out < 0 {
		issues = append(issues, newIssue(CodeNegativeQuantity, m.In, m.Out))
	}

	expected := previousStock + m.In - m.Out
	if expected != m.FinalStock {
		issues = append(issues, Issue{
			Type: IssueTypeError,
			Code: CodeMovementStockInconsistent,
			Message: fmt.Sprintf(
				"el movimiento rompe la continuidad del saldo: previo %d + entradas %d - salidas %d = %d, pero registra %d",
				previousStock, m.In, m.Out, expected, m.FinalStock),
			Severity: severityOf[CodeMovementStockInconsistent],
		})
	}

	if m.IsSaleOrReturn() && (m.UnitCost == nil || !m.UnitCost.IsPositive()) {
		issues = append(issues, newIssue(CodeNonPositiveUnitCost, m.Type))
	}

	return issues
}
