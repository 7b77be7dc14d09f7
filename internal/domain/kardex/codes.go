// Package kardex implementa el motor de integridad y valorización del kardex:
// resolución de valores por moneda, valorización al vuelo, validación del
// libro de movimientos, ajuste de período y agregación de ventas.
//
// Todas las operaciones son funciones puras sobre snapshots inmutables: sin
// I/O, sin estado compartido y sin excepciones. Las anomalías de datos se
// reportan como Issue/Warning estructurados, nunca como errores de Go.
package kardex

import "fmt"

// IssueCode enumera de forma cerrada las violaciones de invariantes del
// kardex. La lógica de chequeo produce códigos; el texto de presentación
// vive solo en las plantillas de este archivo.
type IssueCode string

const (
	CodeStockFormulaMismatch      IssueCode = "STOCK_FORMULA_MISMATCH"
	CodeTotalInMismatch           IssueCode = "TOTAL_IN_MISMATCH"
	CodeTotalOutMismatch          IssueCode = "TOTAL_OUT_MISMATCH"
	CodeMovementStockInconsistent IssueCode = "MOVEMENT_STOCK_INCONSISTENT"
	CodeNegativeStock             IssueCode = "NEGATIVE_STOCK"
	CodeNegativeInitialStock      IssueCode = "NEGATIVE_INITIAL_STOCK"
	CodeNegativeAvgUnitCost       IssueCode = "NEGATIVE_AVG_UNIT_COST"
	CodeNegativeQuantity          IssueCode = "NEGATIVE_QUANTITY"
	CodeNonPositiveUnitCost       IssueCode = "NON_POSITIVE_UNIT_COST"
)

// Severity gravedad de un Issue. Los callers usan "high" para bloquear
// acciones (p. ej. suprimir el botón de corrección) y el resto para señalar.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// severityOf asigna la gravedad fija de cada código.
var severityOf = map[IssueCode]Severity{
	CodeStockFormulaMismatch:      SeverityHigh,
	CodeTotalInMismatch:           SeverityHigh,
	CodeTotalOutMismatch:          SeverityHigh,
	CodeMovementStockInconsistent: SeverityHigh,
	CodeNegativeStock:             SeverityHigh,
	CodeNegativeInitialStock:      SeverityHigh,
	CodeNegativeAvgUnitCost:       SeverityMedium,
	CodeNegativeQuantity:          SeverityHigh,
	CodeNonPositiveUnitCost:       SeverityMedium,
}

// messageOf plantillas de mensaje por código (fmt.Sprintf).
var messageOf = map[IssueCode]string{
	CodeStockFormulaMismatch:      "stock final inconsistente: inicial %d + entradas %d - salidas %d = %d, pero el resumen reporta %d",
	CodeTotalInMismatch:           "total de entradas inconsistente: los movimientos suman %d y el resumen reporta %d",
	CodeTotalOutMismatch:          "total de salidas inconsistente: los movimientos suman %d y el resumen reporta %d",
	CodeMovementStockInconsistent: "el movimiento %d rompe la continuidad del saldo: se esperaba %d y registra %d",
	CodeNegativeStock:             "el stock final del resumen es negativo (%d)",
	CodeNegativeInitialStock:      "el stock inicial efectivo es negativo (%d)",
	CodeNegativeAvgUnitCost:       "el costo unitario promedio es negativo (%s)",
	CodeNegativeQuantity:          "cantidades negativas en el movimiento: entrada %d, salida %d",
	CodeNonPositiveUnitCost:       "movimiento %s sin costo unitario positivo",
}

// newIssue construye un Issue a partir del código y los argumentos de su plantilla.
func newIssue(code IssueCode, args ...any) Issue {
	return Issue{
		Type:     IssueTypeError,
		Code:     code,
		Message:  fmt.Sprintf(messageOf[code], args...),
		Severity: severityOf[code],
	}
}
