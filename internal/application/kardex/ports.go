package kardex

import "github.com/jhoicas/kardex-api/internal/application/dto"

// ReportGenerator puerto de generación del reporte imprimible del kardex.
type ReportGenerator interface {
	GenerateVariantReport(view dto.VariantViewDTO) ([]byte, error)
}
