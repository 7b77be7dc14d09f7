package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var _ repository.KardexRepository = (*KardexRepo)(nil)

// KardexRepo adaptador de lectura del kardex sobre PostgreSQL. Arma los
// snapshots KardexProduct que consume el motor: productos paginados, variantes
// con movimientos en orden cronológico, valores por moneda y resumen.
type KardexRepo struct {
	pool *pgxpool.Pool
}

// NewKardexRepository construye el adaptador.
func NewKardexRepository(pool *pgxpool.Pool) *KardexRepo {
	return &KardexRepo{pool: pool}
}

// FetchKardex devuelve la página de productos con sus kardex completos y el
// total de productos que satisfacen el filtro.
func (r *KardexRepo) FetchKardex(ctx context.Context, q repository.KardexQuery) ([]entity.KardexProduct, int, error) {
	where, args := productFilters(q)

	var total int
	countQuery := "SELECT COUNT(*) FROM products p" + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count kardex products: %w", err)
	}

	listQuery := "SELECT p.id, p.name FROM products p" + where +
		orderClause(q.SortBy, q.SortOrder) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, q.Limit, (q.Page-1)*q.Limit)

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list kardex products: %w", err)
	}
	defer rows.Close()

	var products []entity.KardexProduct
	for rows.Next() {
		var p entity.KardexProduct
		if err := rows.Scan(&p.Product.ID, &p.Product.Name); err != nil {
			return nil, 0, fmt.Errorf("scan kardex product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate kardex products: %w", err)
	}

	for i := range products {
		if err := r.fillProduct(ctx, &products[i], q); err != nil {
			return nil, 0, err
		}
	}
	return products, total, nil
}

// GetVariant devuelve el kardex completo de una variante sin filtros, o nil si
// no existe.
func (r *KardexRepo) GetVariant(ctx context.Context, variantID string) (*entity.KardexVariant, error) {
	v := entity.KardexVariant{ID: variantID}
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(sku, ''), name FROM product_variants WHERE id = $1`, variantID,
	).Scan(&v.SKU, &v.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}
	if err := r.fillVariant(ctx, &v, repository.KardexQuery{}); err != nil {
		return nil, err
	}
	return &v, nil
}

// fillProduct carga categorías y variantes del producto.
func (r *KardexRepo) fillProduct(ctx context.Context, p *entity.KardexProduct, q repository.KardexQuery) error {
	catRows, err := r.pool.Query(ctx,
		`SELECT category FROM product_categories WHERE product_id = $1 ORDER BY category`, p.Product.ID)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	defer catRows.Close()
	for catRows.Next() {
		var c string
		if err := catRows.Scan(&c); err != nil {
			return fmt.Errorf("scan category: %w", err)
		}
		p.Product.Categories = append(p.Product.Categories, c)
	}
	if err := catRows.Err(); err != nil {
		return fmt.Errorf("iterate categories: %w", err)
	}

	varRows, err := r.pool.Query(ctx,
		`SELECT id, COALESCE(sku, ''), name FROM product_variants WHERE product_id = $1 ORDER BY name`, p.Product.ID)
	if err != nil {
		return fmt.Errorf("list variants: %w", err)
	}
	defer varRows.Close()
	for varRows.Next() {
		var v entity.KardexVariant
		if err := varRows.Scan(&v.ID, &v.SKU, &v.Name); err != nil {
			return fmt.Errorf("scan variant: %w", err)
		}
		p.Variants = append(p.Variants, v)
	}
	if err := varRows.Err(); err != nil {
		return fmt.Errorf("iterate variants: %w", err)
	}

	for i := range p.Variants {
		if err := r.fillVariant(ctx, &p.Variants[i], q); err != nil {
			return err
		}
	}
	return nil
}

// fillVariant carga resumen, movimientos (ya filtrados), valores por moneda y
// lista de precios. Si el filtro trae fecha inicial, calcula y puebla
// PeriodInitialStock: stock inicial histórico más el neto de los movimientos
// estrictamente anteriores a la ventana.
func (r *KardexRepo) fillVariant(ctx context.Context, v *entity.KardexVariant, q repository.KardexQuery) error {
	if err := r.fillSummary(ctx, v); err != nil {
		return err
	}
	if err := r.fillMovements(ctx, v, q); err != nil {
		return err
	}
	if err := r.fillPrices(ctx, v); err != nil {
		return err
	}

	if q.StartDate != nil {
		var periodInitial int64
		err := r.pool.QueryRow(ctx, `
			SELECT $2::bigint + COALESCE(SUM(in_qty - out_qty), 0)
			FROM kardex_movements
			WHERE variant_id = $1 AND date < $3`,
			v.ID, v.Summary.InitialStock, *q.StartDate,
		).Scan(&periodInitial)
		if err != nil {
			return fmt.Errorf("period initial stock: %w", err)
		}
		v.Summary.PeriodInitialStock = &periodInitial
	}
	return nil
}

func (r *KardexRepo) fillSummary(ctx context.Context, v *entity.KardexVariant) error {
	err := r.pool.QueryRow(ctx, `
		SELECT initial_stock, total_in, total_out, final_stock, avg_unit_cost
		FROM kardex_variant_summaries WHERE variant_id = $1`, v.ID,
	).Scan(&v.Summary.InitialStock, &v.Summary.TotalIn, &v.Summary.TotalOut,
		&v.Summary.FinalStock, &v.Summary.AvgUnitCost)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Sin resumen persistido: queda en ceros y el validador lo reportará.
			return nil
		}
		return fmt.Errorf("get summary: %w", err)
	}

	values, err := r.currencyValues(ctx, `
		SELECT c.id, c.code, c.symbol, sv.unit_cost, sv.total_cost, sv.total_value, sv.exchange_rate
		FROM kardex_summary_values sv
		JOIN currencies c ON c.id = sv.currency_id
		WHERE sv.variant_id = $1
		ORDER BY sv.position`, v.ID)
	if err != nil {
		return fmt.Errorf("summary values: %w", err)
	}
	v.Summary.TotalValuesByCurrency = values
	return nil
}

func (r *KardexRepo) fillMovements(ctx context.Context, v *entity.KardexVariant, q repository.KardexQuery) error {
	query := `
		SELECT id, date, type, in_qty, out_qty, final_stock, unit_cost, total_cost, COALESCE(reference, '')
		FROM kardex_movements m
		WHERE variant_id = $1`
	args := []any{v.ID}

	if q.StartDate != nil {
		args = append(args, *q.StartDate)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if q.EndDate != nil {
		args = append(args, *q.EndDate)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	if len(q.MovementTypes) > 0 {
		args = append(args, q.MovementTypes)
		query += fmt.Sprintf(" AND type = ANY($%d)", len(args))
	}
	if len(q.Currencies) > 0 {
		args = append(args, q.Currencies)
		query += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM kardex_movement_values mv
			WHERE mv.movement_id = m.id AND mv.currency_id = ANY($%d))`, len(args))
	}
	// El motor asume orden cronológico; el desempate por id lo hace estable.
	query += " ORDER BY date, id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var m entity.KardexMovement
		var id string
		if err := rows.Scan(&id, &m.Date, &m.Type, &m.In, &m.Out, &m.FinalStock,
			&m.UnitCost, &m.TotalCost, &m.Reference); err != nil {
			return fmt.Errorf("scan movement: %w", err)
		}
		ids = append(ids, id)
		v.Movements = append(v.Movements, m)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate movements: %w", err)
	}

	for i, id := range ids {
		values, err := r.currencyValues(ctx, `
			SELECT c.id, c.code, c.symbol, mv.unit_cost, mv.total_cost, mv.total_value, mv.exchange_rate
			FROM kardex_movement_values mv
			JOIN currencies c ON c.id = mv.currency_id
			WHERE mv.movement_id = $1
			ORDER BY mv.position`, id)
		if err != nil {
			return fmt.Errorf("movement values: %w", err)
		}
		v.Movements[i].Values = values
	}
	return nil
}

func (r *KardexRepo) fillPrices(ctx context.Context, v *entity.KardexVariant) error {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.code, c.symbol, vp.price
		FROM variant_prices vp
		JOIN currencies c ON c.id = vp.currency_id
		WHERE vp.variant_id = $1
		ORDER BY c.id`, v.ID)
	if err != nil {
		return fmt.Errorf("list prices: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p entity.VariantPrice
		var ref entity.CurrencyRef
		if err := rows.Scan(&ref.ID, &ref.Code, &ref.Symbol, &p.Price); err != nil {
			return fmt.Errorf("scan price: %w", err)
		}
		p.CurrencyID = ref.ID
		p.Currency = &ref
		v.Prices = append(v.Prices, p)
	}
	return rows.Err()
}

// currencyValues ejecuta una consulta que proyecta (currency, montos) y arma
// la lista de CurrencyValue preservando el orden de persistencia.
func (r *KardexRepo) currencyValues(ctx context.Context, query string, args ...any) ([]entity.CurrencyValue, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.CurrencyValue
	for rows.Next() {
		var cv entity.CurrencyValue
		if err := rows.Scan(&cv.Currency.ID, &cv.Currency.Code, &cv.Currency.Symbol,
			&cv.UnitCost, &cv.TotalCost, &cv.TotalValue, &cv.ExchangeRate); err != nil {
			return nil, err
		}
		out = append(out, cv)
	}
	return out, rows.Err()
}

// productFilters arma el WHERE del listado (categorías, búsqueda por nombre o SKU).
func productFilters(q repository.KardexQuery) (string, []any) {
	var conds []string
	var args []any

	if len(q.Categories) > 0 {
		args = append(args, q.Categories)
		conds = append(conds, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM product_categories pc
			WHERE pc.product_id = p.id AND pc.category = ANY($%d))`, len(args)))
	}
	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		conds = append(conds, fmt.Sprintf(`(p.name ILIKE $%d OR EXISTS (
			SELECT 1 FROM product_variants pv
			WHERE pv.product_id = p.id AND pv.sku ILIKE $%d))`, len(args), len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// orderClause ordena solo por columnas conocidas; cualquier otra cosa cae al
// orden por nombre.
func orderClause(sortBy, sortOrder string) string {
	col := "p.name"
	if sortBy == "id" {
		col = "p.id"
	}
	dir := "ASC"
	if strings.EqualFold(sortOrder, "desc") {
		dir = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", col, dir)
}
