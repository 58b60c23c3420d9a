package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeboard/internal/core/apperror"
	"storeboard/internal/core/id"
	"storeboard/internal/core/types"
)

type mockStore struct {
	items     []*Item
	movements []Movement

	applyCalls int
	failAll    error
}

func (m *mockStore) LoadItems(ctx context.Context) ([]*Item, error) {
	return m.items, m.failAll
}

func (m *mockStore) LoadMovements(ctx context.Context) ([]Movement, error) {
	return m.movements, m.failAll
}

func (m *mockStore) CreateItem(ctx context.Context, item *Item) error {
	if m.failAll != nil {
		return m.failAll
	}
	m.items = append(m.items, item)
	return nil
}

func (m *mockStore) UpdateItem(ctx context.Context, item *Item) error {
	return m.failAll
}

func (m *mockStore) DeleteItem(ctx context.Context, itemID id.ID) error {
	return m.failAll
}

func (m *mockStore) AppendMovement(ctx context.Context, mv Movement) error {
	if m.failAll != nil {
		return m.failAll
	}
	m.movements = append(m.movements, mv)
	return nil
}

func (m *mockStore) ApplyStockChange(ctx context.Context, item *Item, mv Movement) error {
	m.applyCalls++
	if m.failAll != nil {
		return m.failAll
	}
	m.movements = append(m.movements, mv)
	return nil
}

func newTestLedger(t *testing.T, items ...*Item) (*Ledger, *mockStore) {
	t.Helper()
	store := &mockStore{items: items}
	ledger := NewLedger(store)
	require.NoError(t, ledger.Load(context.Background()))
	return ledger, store
}

func testItem(name string, current, min int) *Item {
	return &Item{
		ID:           id.New(),
		Name:         name,
		Category:     "beverages",
		CurrentStock: current,
		MinStock:     min,
		Unit:         "bottle",
		UnitPrice:    types.MustMoney("12.50"),
	}
}

func TestAddStock(t *testing.T) {
	item := testItem("oat milk", 15, 20)
	ledger, store := newTestLedger(t, item)

	// Below minimum, so the item starts alerted.
	require.Len(t, ledger.Alerts(), 1)

	updated, err := ledger.AddStock(context.Background(), item.ID, 10, "weekly delivery")
	require.NoError(t, err)

	assert.Equal(t, 25, updated.CurrentStock)
	assert.False(t, updated.LastRestocked.IsZero())
	assert.Empty(t, ledger.Alerts())

	require.Len(t, store.movements, 1)
	assert.Equal(t, MovementIn, store.movements[0].Type)
	assert.Equal(t, 10, store.movements[0].Quantity)
	assert.Equal(t, "weekly delivery", store.movements[0].Notes)
}

func TestRemoveStockTriggersWarning(t *testing.T) {
	item := testItem("espresso beans", 25, 10)
	ledger, store := newTestLedger(t, item)

	updated, err := ledger.RemoveStock(context.Background(), item.ID, 20, "sale")
	require.NoError(t, err)

	assert.Equal(t, 5, updated.CurrentStock)
	require.Len(t, store.movements, 1)
	assert.Equal(t, MovementOut, store.movements[0].Type)
	assert.Equal(t, "sale", store.movements[0].Notes)

	alerts := ledger.Alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertLowStock, alerts[0].Type)
	assert.Equal(t, SeverityWarning, alerts[0].Severity)
	assert.Equal(t, item.ID, alerts[0].ItemID)
	assert.Contains(t, alerts[0].Message, "espresso beans")
	assert.Contains(t, alerts[0].Message, "5 bottle")
}

func TestRemoveStockToZeroIsError(t *testing.T) {
	item := testItem("syrup", 5, 10)
	ledger, _ := newTestLedger(t, item)

	updated, err := ledger.RemoveStock(context.Background(), item.ID, 5, "spoiled")
	require.NoError(t, err)
	assert.Equal(t, 0, updated.CurrentStock)

	alerts := ledger.Alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, SeverityError, alerts[0].Severity)
}

func TestRemoveStockInsufficient(t *testing.T) {
	item := testItem("cups", 3, 10)
	ledger, store := newTestLedger(t, item)

	_, err := ledger.RemoveStock(context.Background(), item.ID, 4, "sale")
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInsufficientStock))

	// Nothing written, nothing changed.
	assert.Empty(t, store.movements)
	got, err := ledger.Item(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.CurrentStock)
}

func TestStockMutationUnknownItem(t *testing.T) {
	ledger, store := newTestLedger(t)

	_, err := ledger.AddStock(context.Background(), id.New(), 5, "")
	assert.True(t, apperror.IsNotFound(err))

	_, err = ledger.RemoveStock(context.Background(), id.New(), 5, "sale")
	assert.True(t, apperror.IsNotFound(err))

	// The store was never reached: no orphaned movements.
	assert.Zero(t, store.applyCalls)
	assert.Empty(t, store.movements)
}

func TestStockMutationValidation(t *testing.T) {
	item := testItem("napkins", 50, 10)
	ledger, _ := newTestLedger(t, item)

	for _, qty := range []int{0, -3} {
		_, err := ledger.AddStock(context.Background(), item.ID, qty, "")
		assert.True(t, apperror.IsCode(err, apperror.CodeValidation))

		_, err = ledger.RemoveStock(context.Background(), item.ID, qty, "sale")
		assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
	}
}

func TestStoreFailureLeavesLedgerUnchanged(t *testing.T) {
	item := testItem("oat milk", 15, 10)
	ledger, store := newTestLedger(t, item)
	store.failAll = apperror.NewStoreUnavailable(assert.AnError)

	_, err := ledger.AddStock(context.Background(), item.ID, 10, "")
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeStoreUnavailable))

	got, gerr := ledger.Item(item.ID)
	require.NoError(t, gerr)
	assert.Equal(t, 15, got.CurrentStock)
	assert.Empty(t, ledger.History(context.Background()))
}

func TestAddProduct(t *testing.T) {
	ledger, store := newTestLedger(t)

	created, err := ledger.AddProduct(context.Background(), ItemInput{
		Name:         "matcha powder",
		Category:     "ingredients",
		CurrentStock: 2,
		MinStock:     5,
		Unit:         "bag",
		UnitPrice:    types.MustMoney("38"),
	})
	require.NoError(t, err)

	assert.False(t, id.IsNil(created.ID))
	assert.False(t, created.LastRestocked.IsZero())
	require.Len(t, store.items, 1)

	// No movement on creation, but the fresh item is already low.
	assert.Empty(t, ledger.History(context.Background()))
	alerts := ledger.Alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, created.ID, alerts[0].ItemID)
}

func TestAddProductValidation(t *testing.T) {
	ledger, _ := newTestLedger(t)

	tests := []struct {
		name  string
		input ItemInput
	}{
		{"empty name", ItemInput{Category: "c", Unit: "u"}},
		{"empty category", ItemInput{Name: "n", Unit: "u"}},
		{"empty unit", ItemInput{Name: "n", Category: "c"}},
		{"negative stock", ItemInput{Name: "n", Category: "c", Unit: "u", CurrentStock: -1}},
		{"negative min stock", ItemInput{Name: "n", Category: "c", Unit: "u", MinStock: -1}},
		{"negative price", ItemInput{Name: "n", Category: "c", Unit: "u", UnitPrice: types.MustMoney("-1")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ledger.AddProduct(context.Background(), tt.input)
			require.Error(t, err)
			assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
		})
	}
}

func TestUpdateProductKeepsStock(t *testing.T) {
	item := testItem("oat milk", 15, 10)
	ledger, _ := newTestLedger(t, item)

	updated, err := ledger.UpdateProduct(context.Background(), item.ID, ItemInput{
		Name:         "oat milk 1L",
		Category:     "beverages",
		CurrentStock: 999,
		MinStock:     20,
		Unit:         "carton",
		UnitPrice:    types.MustMoney("14"),
	})
	require.NoError(t, err)

	assert.Equal(t, "oat milk 1L", updated.Name)
	assert.Equal(t, 20, updated.MinStock)
	assert.Equal(t, 15, updated.CurrentStock, "stock changes only through stock operations")

	// Raising the minimum above current stock surfaces an alert.
	require.Len(t, ledger.Alerts(), 1)
}

func TestRemoveProductKeepsHistory(t *testing.T) {
	item := testItem("seasonal blend", 30, 5)
	ledger, _ := newTestLedger(t, item)

	_, err := ledger.RemoveStock(context.Background(), item.ID, 10, "sale")
	require.NoError(t, err)

	require.NoError(t, ledger.RemoveProduct(context.Background(), item.ID))

	_, err = ledger.Item(item.ID)
	assert.True(t, apperror.IsNotFound(err))

	history := ledger.History(context.Background())
	require.Len(t, history, 1)
	assert.Equal(t, UnknownItemName, history[0].ItemName)
}

func TestHistoryOrdering(t *testing.T) {
	a := testItem("oat milk", 50, 5)
	b := testItem("espresso beans", 50, 5)
	ledger, _ := newTestLedger(t, a, b)

	dates := []time.Time{
		time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC),
	}
	i := 0
	ledger.now = func() time.Time {
		d := dates[i]
		i++
		return d
	}

	ctx := context.Background()
	_, err := ledger.RemoveStock(ctx, a.ID, 1, "sale")
	require.NoError(t, err)
	_, err = ledger.RemoveStock(ctx, b.ID, 2, "sale")
	require.NoError(t, err)
	_, err = ledger.RemoveStock(ctx, a.ID, 3, "sale")
	require.NoError(t, err)

	history := ledger.History(ctx)
	require.Len(t, history, 3)
	assert.Equal(t, 2, history[0].Quantity)
	assert.Equal(t, 3, history[1].Quantity)
	assert.Equal(t, 1, history[2].Quantity)
	assert.Equal(t, "espresso beans", history[0].ItemName)

	forA := ledger.HistoryForItem(ctx, a.ID)
	require.Len(t, forA, 2)
	assert.Equal(t, 3, forA[0].Quantity)
	assert.Equal(t, 1, forA[1].Quantity)
}

func TestMovementLogIsAppendOnly(t *testing.T) {
	item := testItem("oat milk", 100, 5)
	ledger, _ := newTestLedger(t, item)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := ledger.AddStock(ctx, item.ID, 2, "")
		require.NoError(t, err)
		_, err = ledger.RemoveStock(ctx, item.ID, 1, "sale")
		require.NoError(t, err)
	}

	history := ledger.History(ctx)
	assert.Len(t, history, 10)

	// Stock equals the starting level plus the signed movement sum.
	sum := 0
	for _, h := range history {
		if h.Type == MovementIn {
			sum += h.Quantity
		} else {
			sum -= h.Quantity
		}
	}
	got, err := ledger.Item(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 100+sum, got.CurrentStock)
}

func TestAlertInvariant(t *testing.T) {
	items := []*Item{
		testItem("above", 30, 10),
		testItem("equal", 10, 10),
		testItem("below", 3, 10),
		testItem("zero", 0, 10),
	}
	ledger, _ := newTestLedger(t, items...)

	alerts := ledger.Alerts()
	require.Len(t, alerts, 3)

	byItem := make(map[id.ID]Alert, len(alerts))
	for _, a := range alerts {
		byItem[a.ItemID] = a
	}
	assert.NotContains(t, byItem, items[0].ID)
	assert.Equal(t, SeverityWarning, byItem[items[1].ID].Severity)
	assert.Equal(t, SeverityWarning, byItem[items[2].ID].Severity)
	assert.Equal(t, SeverityError, byItem[items[3].ID].Severity)
}
