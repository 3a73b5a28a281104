package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tablero-api/internal/domain"
	"github.com/jhoicas/Tablero-api/internal/domain/entity"
	"github.com/jhoicas/Tablero-api/internal/domain/report"
	"github.com/jhoicas/Tablero-api/internal/domain/repository"
)

func TestOrderUseCase_ListDefaults(t *testing.T) {
	repo := &fakeOrderRepo{page: &repository.Page[repository.OrderRow]{
		Rows: []repository.OrderRow{
			{ID: "o1", OrderNumber: "SO-1", OrderDate: testNow.AddDate(0, 0, -3), TotalAmount: dec("99.5")},
		},
		TotalCount: 1,
	}}
	uc := NewOrderUseCase(repo, testSettings())

	resp, err := uc.List(context.Background(), map[string][]string{"pageSize": {"5000"}})
	require.NoError(t, err)

	q := repo.lastQuery
	assert.Equal(t, 200, q.Filters.PageSize)
	assert.Equal(t, report.Sort{Column: "orderDate", Direction: report.Desc}, q.Filters.Sort)
	assert.Equal(t, "30d", q.Window.Key)
	assert.True(t, q.Window.HasComparison())

	require.Len(t, resp.Rows, 1)
	assert.Equal(t, 3, resp.Rows[0].DaysAgo)
	assert.Equal(t, "$99.50", resp.Rows[0].TotalAmountDisplay)
}

func TestOrderUseCase_ListLargePageSize(t *testing.T) {
	repo := &fakeOrderRepo{page: &repository.Page[repository.OrderRow]{}}
	uc := NewOrderUseCase(repo, testSettings())

	resp, err := uc.List(context.Background(), map[string][]string{"sortColumn": {"customer"}})
	require.NoError(t, err)

	assert.Equal(t, 50, repo.lastQuery.Filters.PageSize)
	assert.Equal(t, report.Asc, repo.lastQuery.Filters.Sort.Direction)
	assert.NotNil(t, resp.Rows)
	assert.Empty(t, resp.Rows)
}

func TestOrderUseCase_Get(t *testing.T) {
	id := "0d3c4b1a-2f5e-4c6d-8e7f-9a0b1c2d3e4f"
	repo := &fakeOrderRepo{order: &entity.Order{
		ID:          id,
		OrderNumber: "SO-9",
		TotalAmount: dec("30"),
		Items: []entity.OrderLineItem{
			{ProductCode: "A-1", Quantity: dec("2"), UnitPrice: dec("10"), LineAmount: dec("20")},
			{ProductCode: "B-2", Quantity: dec("1"), UnitPrice: dec("10"), LineAmount: dec("10")},
		},
	}}
	uc := NewOrderUseCase(repo, testSettings())

	got, err := uc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "SO-9", got.OrderNumber)
	assert.Len(t, got.Items, 2)

	_, err = uc.Get(context.Background(), "SO-9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
