package kardex_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/kardex"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func int64Ptr(v int64) *int64 { return &v }

// issuesByCode agrupa los issues por código para asserts puntuales.
func issuesByCode(result kardex.ValidationResult) map[kardex.IssueCode][]kardex.Issue {
	out := make(map[kardex.IssueCode][]kardex.Issue)
	for _, i := range result.Issues {
		out[i.Code] = append(out[i.Code], i)
	}
	return out
}

// warningsByType agrupa las advertencias por tipo.
func warningsByType(result kardex.ValidationResult) map[kardex.WarningType][]kardex.Warning {
	out := make(map[kardex.WarningType][]kardex.Warning)
	for _, w := range result.Warnings {
		out[w.Type] = append(out[w.Type], w)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Fórmula de conservación: inicial + entradas - salidas = final
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_ConservacionSatisfecha(t *testing.T) {
	variant := entity.KardexVariant{
		ID: "v1",
		Summary: entity.KardexVariantSummary{
			InitialStock: 10, TotalIn: 5, TotalOut: 3, FinalStock: 12,
		},
		Movements: []entity.KardexMovement{
			{Type: entity.MovementCOMPRA, In: 5, Out: 0, FinalStock: 15},
			{Type: entity.MovementAJUSTE, In: 0, Out: 3, FinalStock: 12},
		},
	}

	result := kardex.Validate(variant)

	byCode := issuesByCode(result)
	assert.Empty(t, byCode[kardex.CodeStockFormulaMismatch],
		"la fórmula satisfecha no debe producir STOCK_FORMULA_MISMATCH")
	assert.True(t, result.IsValid)
}

func TestValidate_ConservacionViolada_SugiereInicialCorrecto(t *testing.T) {
	// Contraejemplo canónico: inicial=10, entradas=5, salidas=3, final reportado=11.
	// El inicial consistente sería 11 - 5 + 3 = 9.
	variant := entity.KardexVariant{
		ID: "v1",
		Summary: entity.KardexVariantSummary{
			InitialStock: 10, TotalIn: 5, TotalOut: 3, FinalStock: 11,
		},
		Movements: []entity.KardexMovement{
			{Type: entity.MovementCOMPRA, In: 5, Out: 0, FinalStock: 15},
			{Type: entity.MovementAJUSTE, In: 0, Out: 3, FinalStock: 12},
		},
	}

	result := kardex.Validate(variant)

	require.False(t, result.IsValid)
	byCode := issuesByCode(result)
	require.Len(t, byCode[kardex.CodeStockFormulaMismatch], 1,
		"debe reportarse exactamente un STOCK_FORMULA_MISMATCH")
	assert.Equal(t, kardex.SeverityHigh, byCode[kardex.CodeStockFormulaMismatch][0].Severity)
	assert.Len(t, result.Issues, 1, "no deben dispararse otros códigos en este escenario")

	syncs := warningsByType(result)[kardex.WarningSync]
	require.Len(t, syncs, 1, "debe sugerirse el stock inicial corregido")
	assert.Contains(t, syncs[0].Message, "9", "la advertencia debe traer el inicial consistente (9)")
	assert.Contains(t, syncs[0].Suggestion, "corrección de stock inicial",
		"sin período en juego la sugerencia apunta al flujo de reajuste")
}

func TestValidate_ConservacionViolada_ConPeriodo_SugiereRevisarPrevios(t *testing.T) {
	variant := entity.KardexVariant{
		ID: "v1",
		Summary: entity.KardexVariantSummary{
			InitialStock:       99, // ignorado: manda el inicial del período
			PeriodInitialStock: int64Ptr(10),
			TotalIn:            5, TotalOut: 3, FinalStock: 11,
		},
	}

	result := kardex.Validate(variant)

	syncs := warningsByType(result)[kardex.WarningSync]
	require.Len(t, syncs, 1)
	assert.Contains(t, syncs[0].Suggestion, "período",
		"con PeriodInitialStock la sugerencia debe apuntar a los movimientos previos al rango")
}

func TestValidate_CorreccionNegativaNoSeSugiere(t *testing.T) {
	// final - entradas + salidas < 0: la fórmula falla pero no hay inicial
	// plausible que sugerir.
	variant := entity.KardexVariant{
		Summary: entity.KardexVariantSummary{
			InitialStock: 5, TotalIn: 10, TotalOut: 0, FinalStock: 3,
		},
		Movements: []entity.KardexMovement{
			{Type: entity.MovementCOMPRA, In: 10, FinalStock: 15},
		},
	}

	result := kardex.Validate(variant)

	require.False(t, result.IsValid)
	assert.Empty(t, warningsByType(result)[kardex.WarningSync],
		"un inicial corregido negativo no debe sugerirse")
}

// ──────────────────────────────────────────────────────────────────────────────
// Totales recalculados desde los movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_TotalEntradasInconsistente(t *testing.T) {
	// Los movimientos suman in=10/out=4; el resumen dice in=9 pero su fórmula
	// interna cuadra (0 + 9 - 4 = 5), así que solo debe caer TOTAL_IN_MISMATCH.
	variant := entity.KardexVariant{
		Summary: entity.KardexVariantSummary{
			InitialStock: 0, TotalIn: 9, TotalOut: 4, FinalStock: 5,
		},
		Movements: []entity.KardexMovement{
			{Type: entity.MovementCOMPRA, In: 10, Out: 0, FinalStock: 10},
			{Type: entity.MovementAJUSTE, In: 0, Out: 4, FinalStock: 6},
		},
	}

	result := kardex.Validate(variant)

	byCode := issuesByCode(result)
	assert.Len(t, byCode[kardex.CodeTotalInMismatch], 1)
	assert.Empty(t, byCode[kardex.CodeTotalOutMismatch],
		"el mismatch de entradas no debe arrastrar al de salidas")
}

func TestValidate_TotalSalidasInconsistente(t *testing.T) {
	variant := entity.KardexVariant{
		Summary: entity.KardexVariantSummary{
			InitialStock: 0, TotalIn: 10, TotalOut: 3, FinalStock: 7,
		},
		Movements: []entity.KardexMovement{
			{Type: entity.MovementCOMPRA, In: 10, Out: 0, FinalStock: 10},
			{Type: entity.MovementAJUSTE, In: 0, Out: 4, FinalStock: 6},
		},
	}

	result := kardex.Validate(variant)

	byCode := issuesByCode(result)
	assert.Len(t, byCode[kardex.CodeTotalOutMismatch], 1)
	assert.Empty(t, byCode[kardex.CodeTotalInMismatch])
}

// ──────────────────────────────────────────────────────────────────────────────
// Continuidad secuencial del saldo
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_ContinuidadViolada_UnaSolaPosicion(t *testing.T) {
	// Violación aislada: el movimiento 2 (1-based) registra 7 donde el saldo
	// derivado sería 6; el movimiento 3 es coherente con el saldo (erróneo)
	// anterior, así que hay exactamente un issue y referencia la posición 2.
	variant := entity.KardexVariant{
		Summary: entity.KardexVariantSummary{
			InitialStock: 0, TotalIn: 10, TotalOut: 5, FinalStock: 5,
		},
		Movements: []entity.KardexMovement{
			{Type: entity.MovementCOMPRA, In: 10, Out: 0, FinalStock: 10},
			{Type: entity.MovementAJUSTE, In: 0, Out: 4, FinalStock: 7},
			{Type: entity.MovementAJUSTE, In: 0, Out: 1, FinalStock: 6},
		},
	}

	result := kardex.Validate(variant)

	byCode := issuesByCode(result)
	require.Len(t, byCode[kardex.CodeMovementStockInconsistent], 1,
		"una sola violación debe producir exactamente un issue")
	assert.Contains(t, byCode[kardex.CodeMovementStockInconsistent][0].Message, "movimiento 2",
		"la posición reportada es 1-based")
	assert.Equal(t, kardex.SeverityHigh, byCode[kardex.CodeMovementStockInconsistent][0].Severity)
}

func TestValidate_ContinuidadViolada_Cascada(t *testing.T) {
	// El movimiento 2 rompe el saldo y el 3 no absorbe el error: ambos se reportan.
	variant := entity.KardexVariant{
		Summary: entity.KardexVariantSummary{
			InitialStock: 0, TotalIn: 10, TotalOut: 5, FinalStock: 5,
		},
		Movements: []entity.KardexMovement{
			{Type: entity.MovementCOMPRA, In: 10, Out: 0, FinalStock: 10},
			{Type: entity.MovementAJUSTE, In: 0, Out: 4, FinalStock: 7},
			{Type: entity.MovementAJUSTE, In: 0, Out: 1, FinalStock: 5},
		},
	}

	result := kardex.Validate(variant)

	byCode := issuesByCode(result)
	require.Len(t, byCode[kardex.CodeMovementStockInconsistent], 2)
	assert.Contains(t, byCode[kardex.CodeMovementStockInconsistent][0].Message, "movimiento 2")
	assert.Contains(t, byCode[kardex.CodeMovementStockInconsistent][1].Message, "movimiento 3")
}

// ──────────────────────────────────────────────────────────────────────────────
// Cotas de sanidad
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_CotasDeSanidad(t *testing.T) {
	variant := entity.KardexVariant{
		Summary: entity.KardexVariantSummary{
			InitialStock: -2, TotalIn: 0, TotalOut: 0, FinalStock: -2,
			AvgUnitCost: dec("-1.50"),
		},
	}

	result := kardex.Validate(variant)

	byCode := issuesByCode(result)
	require.Len(t, byCode[kardex.CodeNegativeInitialStock], 1)
	require.Len(t, byCode[kardex.CodeNegativeStock], 1)
	require.Len(t, byCode[kardex.CodeNegativeAvgUnitCost], 1)
	assert.Equal(t, kardex.SeverityHigh, byCode[kardex.CodeNegativeStock][0].Severity)
	assert.Equal(t, kardex.SeverityMedium, byCode[kardex.CodeNegativeAvgUnitCost][0].Severity,
		"el costo promedio negativo es medium, no high")
}

// ──────────────────────────────────────────────────────────────────────────────
// Preferencia del inicial de período y escenario completo
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_PrefierePeriodInitialStock(t *testing.T) {
	// Con el inicial histórico (0) la fórmula fallaría; con el del período (5)
	// cuadra. El motor debe preferir el del período siempre que esté presente.
	variant := entity.KardexVariant{
		Summary: entity.KardexVariantSummary{
			InitialStock:       0,
			PeriodInitialStock: int64Ptr(5),
			TotalIn:            5, TotalOut: 0, FinalStock: 10,
			TotalValuesByCurrency: []entity.CurrencyValue{
				{Currency: entity.CurrencyRef{ID: "cop"}, TotalValue: decPtr("1000"), ExchangeRate: decPtr("1")},
			},
		},
		Movements: []entity.KardexMovement{
			{Type: entity.MovementCOMPRA, In: 5, Out: 0, FinalStock: 10},
		},
	}

	result := kardex.Validate(variant)

	assert.True(t, result.IsValid, "con el inicial del período la fórmula debe cuadrar")
	assert.Empty(t, result.Issues)
}

func TestValidate_EscenarioCompletoConAdvertencias(t *testing.T) {
	// Kardex aritméticamente impecable pero sin datos de valorización: debe ser
	// válido con exactamente una advertencia "data" (VENTA sin values) y una
	// "calculation" (resumen sin valorización persistida).
	variant := entity.KardexVariant{
		ID: "v1",
		Summary: entity.KardexVariantSummary{
			InitialStock: 0, TotalIn: 10, TotalOut: 4, FinalStock: 6,
		},
		Movements: []entity.KardexMovement{
			{Type: entity.MovementCOMPRA, In: 10, Out: 0, FinalStock: 10},
			{Type: entity.MovementVENTA, In: 0, Out: 4, FinalStock: 6},
		},
	}

	result := kardex.Validate(variant)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Issues)
	byType := warningsByType(result)
	require.Len(t, byType[kardex.WarningData], 1, "la VENTA sin values debe advertirse una sola vez")
	require.Len(t, byType[kardex.WarningCalculation], 1)
	assert.Len(t, result.Warnings, 2)
	assert.Contains(t, byType[kardex.WarningData][0].Message, "al vuelo")
	assert.NotEmpty(t, byType[kardex.WarningData][0].Suggestion)
}

func TestValidate_NuncaLanza(t *testing.T) {
	// Total por contrato: ni el cero absoluto ni entradas extrañas deben hacer panic.
	assert.NotPanics(t, func() {
		kardex.Validate(entity.KardexVariant{})
		kardex.Validate(entity.KardexVariant{Movements: make([]entity.KardexMovement, 0)})
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// ValidateMovement: validación incremental de un movimiento aislado
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateMovement_Continuidad(t *testing.T) {
	mov := entity.KardexMovement{
		Type: entity.MovementCOMPRA, In: 5, Out: 0, FinalStock: 14,
		UnitCost: decPtr("3.00"),
	}

	issues := kardex.ValidateMovement(mov, 10)

	require.Len(t, issues, 1)
	assert.Equal(t, kardex.CodeMovementStockInconsistent, issues[0].Code)

	mov.FinalStock = 15
	assert.Empty(t, kardex.ValidateMovement(mov, 10))
}

func TestValidateMovement_CantidadesNegativas(t *testing.T) {
	mov := entity.KardexMovement{Type: entity.MovementAJUSTE, In: -1, Out: 0, FinalStock: 9}

	issues := kardex.ValidateMovement(mov, 10)

	codes := make([]kardex.IssueCode, 0, len(issues))
	for _, i := range issues {
		codes = append(codes, i.Code)
	}
	assert.Contains(t, codes, kardex.CodeNegativeQuantity)
}

func TestValidateMovement_VentaSinCostoUnitario(t *testing.T) {
	mov := entity.KardexMovement{Type: entity.MovementVENTA, In: 0, Out: 2, FinalStock: 8}

	issues := kardex.ValidateMovement(mov, 10)

	require.Len(t, issues, 1)
	assert.Equal(t, kardex.CodeNonPositiveUnitCost, issues[0].Code)

	mov.UnitCost = decPtr("0")
	issues = kardex.ValidateMovement(mov, 10)
	require.Len(t, issues, 1, "costo cero tampoco es positivo")

	mov.UnitCost = decPtr("12.50")
	assert.Empty(t, kardex.ValidateMovement(mov, 10))
}
