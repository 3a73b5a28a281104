package postgres

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tablero-api/internal/domain/report"
)

var testPlan = listingPlan{
	base:          "SELECT c.id, c.name, os.last_order_date FROM customers c",
	searchColumns: []string{"c.name", "co.name"},
	sortColumns: map[string]string{
		"name":          "c.name",
		"lastOrderDate": "os.last_order_date",
	},
	defaultSort: "name",
	tieBreaker:  "c.id",
}

func filters(page, size int, sort report.Sort) report.Filters {
	return report.Filters{Page: page, PageSize: size, Sort: sort}
}

func TestOrderBy_NullsLastBothDirections(t *testing.T) {
	asc := testPlan.orderBy(report.Sort{Column: "lastOrderDate", Direction: report.Asc})
	desc := testPlan.orderBy(report.Sort{Column: "lastOrderDate", Direction: report.Desc})

	assert.Equal(t, " ORDER BY os.last_order_date ASC NULLS LAST, c.id ASC", asc)
	assert.Equal(t, " ORDER BY os.last_order_date DESC NULLS LAST, c.id ASC", desc)
}

func TestOrderBy_UnknownColumnUsesDefault(t *testing.T) {
	got := testPlan.orderBy(report.Sort{Column: "id; DROP TABLE x", Direction: report.Desc})
	assert.Equal(t, " ORDER BY c.name DESC NULLS LAST, c.id ASC", got)
}

func TestOrderBy_TieBreakerNotRepeated(t *testing.T) {
	plan := testPlan
	plan.sortColumns = map[string]string{"id": "c.id"}
	plan.defaultSort = "id"

	assert.Equal(t, " ORDER BY c.id ASC NULLS LAST", plan.orderBy(report.Sort{Column: "id", Direction: report.Asc}))
}

func TestBuild_PaginationAndCount(t *testing.T) {
	b := &queryBuilder{}
	b.where("c.active = " + b.arg(true))

	f := filters(3, 20, report.Sort{Column: "name", Direction: report.Asc})
	f.Search = "acme_corp"

	pageSQL, countSQL, pageArgs, countArgs := testPlan.build(b, f)

	assert.Equal(t,
		"SELECT c.id, c.name, os.last_order_date FROM customers c WHERE c.active = $1 AND (c.name ILIKE $2 OR co.name ILIKE $2)"+
			" ORDER BY c.name ASC NULLS LAST, c.id ASC LIMIT $3 OFFSET $4",
		pageSQL)
	assert.Equal(t,
		"SELECT COUNT(*) FROM (SELECT c.id, c.name, os.last_order_date FROM customers c WHERE c.active = $1 AND (c.name ILIKE $2 OR co.name ILIKE $2)) AS filtered",
		countSQL)

	require.Len(t, pageArgs, 4)
	assert.Equal(t, `%acme\_corp%`, pageArgs[1])
	assert.Equal(t, 20, pageArgs[2])
	assert.Equal(t, 40, pageArgs[3])
	assert.Len(t, countArgs, 2)
}

func TestBuild_IsDeterministic(t *testing.T) {
	f := filters(2, 10, report.Sort{Column: "lastOrderDate", Direction: report.Desc})
	first, _, _, _ := testPlan.build(&queryBuilder{}, f)
	second, _, _, _ := testPlan.build(&queryBuilder{}, f)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "c.id ASC LIMIT")
}

func TestQueryBuilder_Filters(t *testing.T) {
	lo := decimal.NewFromInt(10)
	f := report.Filters{MinAmount: &lo}

	b := &queryBuilder{}
	b.amountRange("os.total_spent", f)
	b.excludeDomains("co.domain", []string{"gmail.com"})
	b.dateRange("o.order_date", report.DateRange{})

	assert.Equal(t,
		" WHERE os.total_spent >= $1 AND (co.domain IS NULL OR LOWER(co.domain) <> ALL($2))",
		b.whereClause())
	assert.Len(t, b.args, 2)
}

func TestQueryBuilder_NoDomainsNoFilter(t *testing.T) {
	b := &queryBuilder{}
	b.excludeDomains("co.domain", nil)
	b.search("   ", []string{"c.name"})
	assert.Empty(t, b.whereClause())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_now \\ ok`, escapeLike(`50% off_now \ ok`))
}

func TestQueryBuilder_RangeCondAndFlags(t *testing.T) {
	b := &queryBuilder{}
	assert.Equal(t, "TRUE", b.rangeCond("o.order_date", report.DateRange{}))

	w := report.ResolvePeriod("all")
	assert.Equal(t, "o.order_date <= $1", b.rangeCond("o.order_date", w.DateRange))

	yes, no := true, false
	b.flag(&yes, "c.email_marketable", "NOT c.email_marketable")
	b.flag(&no, "c.email_marketable", "NOT c.email_marketable")
	b.flag(nil, "x", "y")
	b.flag(&no, "only-true", "")

	assert.Equal(t, " WHERE c.email_marketable AND NOT c.email_marketable", b.whereClause())
}
