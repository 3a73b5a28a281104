package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Tablero-api/internal/domain/report"
	"github.com/jhoicas/Tablero-api/internal/domain/repository"
)

// listingPlan describe un listado: la consulta base (SELECT ... FROM ... sin WHERE), las
// columnas de búsqueda, el allow-list de orden (nombre público -> expresión SQL) y el
// identificador para desempatar.
type listingPlan struct {
	base          string
	searchColumns []string
	sortColumns   map[string]string
	defaultSort   string
	tieBreaker    string
}

// queryBuilder acumula condiciones y argumentos con placeholders $N.
type queryBuilder struct {
	conds []string
	args  []any
}

// arg registra un argumento y devuelve su placeholder.
func (b *queryBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *queryBuilder) where(cond string) {
	b.conds = append(b.conds, cond)
}

// search agrega (col1 ILIKE $n OR col2 ILIKE $n ...). Término vacío no filtra.
func (b *queryBuilder) search(term string, columns []string) {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return
	}
	ph := b.arg("%" + escapeLike(term) + "%")
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = c + " ILIKE " + ph
	}
	b.where("(" + strings.Join(parts, " OR ") + ")")
}

// amountRange aplica minAmount / maxAmount sobre la expresión dada.
func (b *queryBuilder) amountRange(expr string, f report.Filters) {
	if f.MinAmount != nil {
		b.where(expr + " >= " + b.arg(*f.MinAmount))
	}
	if f.MaxAmount != nil {
		b.where(expr + " <= " + b.arg(*f.MaxAmount))
	}
}

// dateRange acota expr a la ventana; sin cota inferior si Start es cero.
func (b *queryBuilder) dateRange(expr string, r report.DateRange) {
	if !r.Start.IsZero() || !r.End.IsZero() {
		b.where(b.rangeCond(expr, r))
	}
}

// rangeCond condición de ventana para subconsultas (LATERAL, agregados). "TRUE" si no acota.
func (b *queryBuilder) rangeCond(expr string, r report.DateRange) string {
	var parts []string
	if !r.Start.IsZero() {
		parts = append(parts, expr+" >= "+b.arg(r.Start))
	}
	if !r.End.IsZero() {
		parts = append(parts, expr+" <= "+b.arg(r.End))
	}
	if len(parts) == 0 {
		return "TRUE"
	}
	return strings.Join(parts, " AND ")
}

// flag aplica la condición ifTrue / ifFalse según la bandera tri-estado; sin valor no filtra.
func (b *queryBuilder) flag(v *bool, ifTrue, ifFalse string) {
	switch {
	case v == nil:
	case *v && ifTrue != "":
		b.where(ifTrue)
	case !*v && ifFalse != "":
		b.where(ifFalse)
	}
}

// excludeDomains descarta filas cuyo dominio está en el conjunto de consumidor.
// Un dominio NULL no está en el conjunto y se conserva.
func (b *queryBuilder) excludeDomains(expr string, domains []string) {
	if len(domains) == 0 {
		return
	}
	b.where("(" + expr + " IS NULL OR LOWER(" + expr + ") <> ALL(" + b.arg(domains) + "))")
}

func (b *queryBuilder) whereClause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// orderBy arma ORDER BY con la columna pedida (o la por defecto), NULLS LAST en ambas
// direcciones y el desempate estable por identificador.
func (s listingPlan) orderBy(sort report.Sort) string {
	expr, ok := s.sortColumns[sort.Column]
	if !ok {
		expr = s.sortColumns[s.defaultSort]
	}
	dir := "ASC"
	if sort.Direction == report.Desc {
		dir = "DESC"
	}
	clause := " ORDER BY " + expr + " " + dir + " NULLS LAST"
	if s.tieBreaker != "" && s.tieBreaker != expr {
		clause += ", " + s.tieBreaker + " ASC"
	}
	return clause
}

// build devuelve la consulta de la página y la de conteo sobre el mismo conjunto filtrado.
func (s listingPlan) build(b *queryBuilder, f report.Filters) (pageSQL, countSQL string, pageArgs, countArgs []any) {
	b.search(f.Search, s.searchColumns)
	filtered := s.base + b.whereClause()

	countSQL = "SELECT COUNT(*) FROM (" + filtered + ") AS filtered"
	countArgs = append([]any(nil), b.args...)

	page := *b
	page.args = append([]any(nil), b.args...)
	pageSQL = filtered + s.orderBy(f.Sort) +
		" LIMIT " + page.arg(f.PageSize) + " OFFSET " + page.arg(f.Offset())
	return pageSQL, countSQL, page.args, countArgs
}

// runListing ejecuta en paralelo la página y el conteo y escanea cada fila con scan.
// q debe ser el pool: una tx no admite consultas concurrentes.
func runListing[T any](
	ctx context.Context,
	q Querier,
	s listingPlan,
	b *queryBuilder,
	f report.Filters,
	scan func(pgx.Rows) (T, error),
) (*repository.Page[T], error) {
	pageSQL, countSQL, pageArgs, countArgs := s.build(b, f)

	var (
		out   []T
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := q.Query(gctx, pageSQL, pageArgs...)
		if err != nil {
			return fmt.Errorf("query page: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			item, err := scan(rows)
			if err != nil {
				return fmt.Errorf("scan row: %w", err)
			}
			out = append(out, item)
		}
		return rows.Err()
	})
	g.Go(func() error {
		if err := q.QueryRow(gctx, countSQL, countArgs...).Scan(&total); err != nil {
			return fmt.Errorf("count: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return &repository.Page[T]{Rows: out, TotalCount: total}, nil
}

// escapeLike neutraliza los comodines de LIKE en el término de búsqueda.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
