package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	appkardex "github.com/jhoicas/kardex-api/internal/application/kardex"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// KardexHandler maneja las consultas del kardex (protegido).
type KardexHandler struct {
	repo    repository.KardexRepository
	derive  *appkardex.DeriveUseCase
	reports appkardex.ReportGenerator
}

// NewKardexHandler construye el handler.
func NewKardexHandler(repo repository.KardexRepository, derive *appkardex.DeriveUseCase, reports appkardex.ReportGenerator) *KardexHandler {
	return &KardexHandler{repo: repo, derive: derive, reports: reports}
}

// List godoc
// @Summary      Kardex paginado con vista derivada por variante
// @Description  Devuelve la página de productos con movimientos, resumen,
//
//	validación del libro, valor resuelto en la moneda seleccionada
//	y ventas netas. Con filtro de tipo de movimiento o de moneda la
//	validación se omite (la vista parcial no satisface la fórmula
//	de conservación).
//
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        start_date     query  string  false  "YYYY-MM-DD"
// @Param        end_date       query  string  false  "YYYY-MM-DD"
// @Param        category       query  string  false  "categorías separadas por coma"
// @Param        movement_type  query  string  false  "subconjunto de COMPRA,VENTA,DEVOLUCION,AJUSTE"
// @Param        currency       query  string  false  "monedas (filtro de movimientos), separadas por coma"
// @Param        currency_id    query  string  false  "moneda seleccionada para valorizar"
// @Param        search         query  string  false  "búsqueda por nombre o SKU"
// @Param        sort_by        query  string  false  "name | id"
// @Param        sort_order     query  string  false  "asc | desc"
// @Param        page           query  int     false  "página (1-based)"
// @Param        limit          query  int     false  "tamaño de página (máx 100)"
// @Success      200  {object}  dto.KardexResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/kardex [get]
func (h *KardexHandler) List(c *fiber.Ctx) error {
	filter, err := parseKardexFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	products, total, err := h.repo.FetchKardex(c.Context(), filter.ToQuery())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	views := h.derive.DeriveProducts(products, appkardex.OptionsFromFilter(filter))
	return c.JSON(dto.KardexResponse{
		Data:       views,
		Pagination: dto.NewPagination(filter.Page, filter.Limit, total),
	})
}

// VariantReport godoc
// @Summary      Reporte PDF del kardex de una variante
// @Tags         kardex
// @Security     Bearer
// @Produce      application/pdf
// @Param        id           path   string  true   "ID de la variante"
// @Param        currency_id  query  string  false  "moneda seleccionada para valorizar"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/kardex/variants/{id}/report.pdf [get]
func (h *KardexHandler) VariantReport(c *fiber.Ctx) error {
	variant, err := h.repo.GetVariant(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if variant == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "variante no encontrada"})
	}

	view := h.derive.DeriveVariant(*variant, appkardex.DeriveOptions{CurrencyID: c.Query("currency_id")})
	pdfBytes, err := h.reports.GenerateVariantReport(view)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="kardex-`+variant.ID+`.pdf"`)
	return c.Send(pdfBytes)
}

// parseKardexFilter traduce los query params al filtro tipado.
func parseKardexFilter(c *fiber.Ctx) (dto.KardexFilter, error) {
	f := dto.KardexFilter{
		Categories:    queryList(c, "category"),
		MovementTypes: queryList(c, "movement_type"),
		Currencies:    queryList(c, "currency"),
		CurrencyID:    c.Query("currency_id"),
		Search:        c.Query("search"),
		SortBy:        c.Query("sort_by"),
		SortOrder:     c.Query("sort_order"),
		Page:          c.QueryInt("page", 1),
		Limit:         c.QueryInt("limit", 20),
	}

	var err error
	if f.StartDate, err = queryDate(c, "start_date"); err != nil {
		return f, err
	}
	if f.EndDate, err = queryDate(c, "end_date"); err != nil {
		return f, err
	}

	for _, t := range f.MovementTypes {
		switch t {
		case "COMPRA", "VENTA", "DEVOLUCION", "AJUSTE":
		default:
			return f, fiber.NewError(fiber.StatusBadRequest, "movement_type inválido: "+t)
		}
	}

	f.Defaults()
	return f, nil
}

// queryList lee un parámetro multivaluado separado por comas.
func queryList(c *fiber.Ctx, key string) []string {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// queryDate parsea una fecha YYYY-MM-DD opcional.
func queryDate(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, key+" debe ser YYYY-MM-DD")
	}
	return &t, nil
}
