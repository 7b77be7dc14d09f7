package repository

import (
	"context"
	"time"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// KardexQuery parámetros de consulta del kardex. Los slices vacíos significan
// "sin filtro". MovementTypes acepta subconjuntos de COMPRA|VENTA|DEVOLUCION|AJUSTE.
type KardexQuery struct {
	StartDate     *time.Time
	EndDate       *time.Time
	Categories    []string
	MovementTypes []string
	Currencies    []string
	Search        string
	SortBy        string
	SortOrder     string
	Page          int
	Limit         int
}

// KardexRepository puerto de lectura del kardex. Es el colaborador de datos
// del motor: produce snapshots KardexProduct completos por página; el motor
// nunca lo llama de vuelta.
//
// Cuando StartDate está definido, el adaptador debe poblar
// Summary.PeriodInitialStock de cada variante con el saldo inmediatamente
// anterior a la ventana (initialStock + Σ(in−out) de los movimientos previos).
type KardexRepository interface {
	// FetchKardex devuelve la página de productos con sus variantes, movimientos
	// y resúmenes, más el total de productos que satisfacen el filtro.
	FetchKardex(ctx context.Context, q KardexQuery) ([]entity.KardexProduct, int, error)

	// GetVariant devuelve el kardex completo de una variante, o nil si no existe.
	GetVariant(ctx context.Context, variantID string) (*entity.KardexVariant, error)
}
