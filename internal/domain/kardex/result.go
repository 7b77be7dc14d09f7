package kardex

// IssueType clasifica un Issue. Hoy todos los issues emitidos son de tipo
// "error"; "warning" existe para compatibilidad con consumidores que filtran
// por tipo.
type IssueType string

const (
	IssueTypeError   IssueType = "error"
	IssueTypeWarning IssueType = "warning"
)

// WarningType clasifica una advertencia: desincronización de resumen,
// valorización calculada al vuelo o datos incompletos.
type WarningType string

const (
	WarningSync        WarningType = "sync"
	WarningCalculation WarningType = "calculation"
	WarningData        WarningType = "data"
)

// Issue es una violación de un invariante duro del kardex (fórmula de
// conservación, continuidad secuencial, no-negatividad).
type Issue struct {
	Type     IssueType `json:"type"`
	Code     IssueCode `json:"code"`
	Message  string    `json:"message"`
	Severity Severity  `json:"severity"`
}

// Warning es una condición advisoria que no rompe invariantes pero indica
// calidad de datos degradada. Suggestion trae el remedio cuando es derivable
// algorítmicamente (p. ej. el stock inicial corregido exacto).
type Warning struct {
	Type       WarningType `json:"type"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// ValidationResult es el resultado de validar el kardex de una variante.
// IsValid es verdadero si y solo si Issues está vacío; las advertencias
// nunca afectan la validez.
type ValidationResult struct {
	IsValid  bool      `json:"is_valid"`
	Issues   []Issue   `json:"issues"`
	Warnings []Warning `json:"warnings"`
}

// ValidResult devuelve un resultado vacuamente válido, usado cuando la
// política del caller decide omitir la validación (vista parcial del kardex).
func ValidResult() ValidationResult {
	return ValidationResult{IsValid: true, Issues: []Issue{}, Warnings: []Warning{}}
}
