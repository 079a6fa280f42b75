package service

import (
	"context"
	"testing"
	"time"

	"spendlog/internal/dto"
	"spendlog/internal/models"
	"spendlog/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeExpenseStore struct {
	rows map[uuid.UUID]*models.Expense

	updateCalls int
	lastUpdate  repository.ExpenseUpdate
	lastFilter  repository.ExpenseFilter
}

func newFakeExpenseStore() *fakeExpenseStore {
	return &fakeExpenseStore{rows: make(map[uuid.UUID]*models.Expense)}
}

func (f *fakeExpenseStore) Create(_ context.Context, e *models.Expense) error {
	stored := *e
	f.rows[e.ID] = &stored
	return nil
}

func (f *fakeExpenseStore) List(_ context.Context, filter repository.ExpenseFilter) ([]models.Expense, error) {
	f.lastFilter = filter
	out := make([]models.Expense, 0)
	for _, e := range f.rows {
		if e.UserID == filter.UserID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeExpenseStore) GetByID(_ context.Context, id, userID uuid.UUID) (*models.Expense, error) {
	e, ok := f.rows[id]
	if !ok || e.UserID != userID {
		return nil, repository.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (f *fakeExpenseStore) Update(_ context.Context, id, userID uuid.UUID, upd repository.ExpenseUpdate) (*models.Expense, error) {
	f.updateCalls++
	f.lastUpdate = upd

	e, ok := f.rows[id]
	if !ok || e.UserID != userID {
		return nil, repository.ErrNotFound
	}
	if upd.Amount != nil {
		e.Amount = *upd.Amount
	}
	if upd.Category != nil {
		e.Category = *upd.Category
	}
	if upd.SetDescription {
		e.Description = upd.Description
	}
	if upd.Date != nil {
		e.Date = *upd.Date
	}
	e.UpdatedAt = time.Now()
	copied := *e
	return &copied, nil
}

func (f *fakeExpenseStore) Delete(_ context.Context, id, userID uuid.UUID) error {
	e, ok := f.rows[id]
	if !ok || e.UserID != userID {
		return repository.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func newExpenseService(store *fakeExpenseStore) *ExpenseService {
	return NewExpenseService(store, models.NewCategorySet(nil), zap.NewNop())
}

func TestCreateCoercesUnknownCategory(t *testing.T) {
	store := newFakeExpenseStore()
	svc := newExpenseService(store)

	resp, err := svc.Create(context.Background(), uuid.New(), &dto.CreateExpenseRequest{
		Amount:   10,
		Category: "Bogus",
	})
	require.NoError(t, err)
	assert.Equal(t, "Custom", resp.Category)
}

func TestCreateNormalizesInput(t *testing.T) {
	store := newFakeExpenseStore()
	svc := newExpenseService(store)

	resp, err := svc.Create(context.Background(), uuid.New(), &dto.CreateExpenseRequest{
		Amount:      12.5,
		Category:    "Food",
		Description: "  lunch  ",
		Date:        "2024-03-05T14:22:00.000Z",
	})
	require.NoError(t, err)

	assert.Equal(t, "Food", resp.Category)
	require.NotNil(t, resp.Description)
	assert.Equal(t, "lunch", *resp.Description)
	assert.Equal(t, "2024-03-05", resp.Date)
}

func TestCreateBlankDescriptionBecomesAbsent(t *testing.T) {
	svc := newExpenseService(newFakeExpenseStore())

	resp, err := svc.Create(context.Background(), uuid.New(), &dto.CreateExpenseRequest{
		Amount:      5,
		Description: "   ",
	})
	require.NoError(t, err)
	assert.Nil(t, resp.Description)
}

func TestCreateDefaultsDateToToday(t *testing.T) {
	svc := newExpenseService(newFakeExpenseStore())

	resp, err := svc.Create(context.Background(), uuid.New(), &dto.CreateExpenseRequest{Amount: 5})
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format("2006-01-02"), resp.Date)
}

func TestUpdateEmptyRequestIsNoOp(t *testing.T) {
	store := newFakeExpenseStore()
	svc := newExpenseService(store)
	userID := uuid.New()

	created, err := svc.Create(context.Background(), userID, &dto.CreateExpenseRequest{
		Amount:   30,
		Category: "Travel",
	})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	resp, err := svc.Update(context.Background(), id, userID, &dto.UpdateExpenseRequest{})
	require.NoError(t, err)

	assert.Equal(t, 0, store.updateCalls, "no write for an empty update")
	assert.Equal(t, created.Amount, resp.Amount)
	assert.Equal(t, created.Category, resp.Category)
}

func TestUpdateCoercesCategory(t *testing.T) {
	store := newFakeExpenseStore()
	svc := newExpenseService(store)
	userID := uuid.New()

	created, err := svc.Create(context.Background(), userID, &dto.CreateExpenseRequest{Amount: 30})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	resp, err := svc.Update(context.Background(), id, userID, &dto.UpdateExpenseRequest{
		Category: dto.Optional[string]{Present: true, Value: "NotARealCategory"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Custom", resp.Category)
}

func TestUpdateNullCategoryFallsBackToCustom(t *testing.T) {
	store := newFakeExpenseStore()
	svc := newExpenseService(store)
	userID := uuid.New()

	created, err := svc.Create(context.Background(), userID, &dto.CreateExpenseRequest{
		Amount:   30,
		Category: "Food",
	})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	resp, err := svc.Update(context.Background(), id, userID, &dto.UpdateExpenseRequest{
		Category: dto.Optional[string]{Present: true, Null: true},
	})
	require.NoError(t, err)

	require.NotNil(t, store.lastUpdate.Category)
	assert.Equal(t, "Custom", *store.lastUpdate.Category)
	assert.Equal(t, "Custom", resp.Category)
}

func TestUpdateNullDescriptionClearsColumn(t *testing.T) {
	store := newFakeExpenseStore()
	svc := newExpenseService(store)
	userID := uuid.New()

	created, err := svc.Create(context.Background(), userID, &dto.CreateExpenseRequest{
		Amount:      30,
		Description: "old note",
	})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	resp, err := svc.Update(context.Background(), id, userID, &dto.UpdateExpenseRequest{
		Description: dto.Optional[string]{Present: true, Null: true},
	})
	require.NoError(t, err)

	assert.True(t, store.lastUpdate.SetDescription)
	assert.Nil(t, store.lastUpdate.Description)
	assert.Nil(t, resp.Description)
}

func TestUpdateNotFoundForOtherOwner(t *testing.T) {
	store := newFakeExpenseStore()
	svc := newExpenseService(store)
	owner := uuid.New()

	created, err := svc.Create(context.Background(), owner, &dto.CreateExpenseRequest{Amount: 30})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	amount := dto.Optional[float64]{Present: true, Value: 99}
	_, err = svc.Update(context.Background(), id, uuid.New(), &dto.UpdateExpenseRequest{Amount: amount})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, store.updateCalls, "probe misses before any statement is built")
}

func TestDeleteNotFoundForOtherOwner(t *testing.T) {
	store := newFakeExpenseStore()
	svc := newExpenseService(store)
	owner := uuid.New()

	created, err := svc.Create(context.Background(), owner, &dto.CreateExpenseRequest{Amount: 30})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	err = svc.Delete(context.Background(), id, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	// the row survives for its real owner
	_, err = svc.Get(context.Background(), id, owner)
	assert.NoError(t, err)
}

func TestListForwardsFilters(t *testing.T) {
	store := newFakeExpenseStore()
	svc := newExpenseService(store)
	userID := uuid.New()

	_, err := svc.List(context.Background(), userID, ListParams{
		From:     "2024-01-01",
		To:       "2024-02-01",
		Category: "Food",
		Limit:    25,
		Offset:   5,
	})
	require.NoError(t, err)

	assert.Equal(t, userID, store.lastFilter.UserID)
	assert.Equal(t, "2024-01-01", store.lastFilter.From)
	assert.Equal(t, "Food", store.lastFilter.Category)
	assert.Equal(t, 25, store.lastFilter.Limit)
}

func TestCategoriesReflectInjectedSet(t *testing.T) {
	svc := NewExpenseService(newFakeExpenseStore(), models.NewCategorySet([]string{"Groceries"}), zap.NewNop())

	resp := svc.Categories()
	assert.Equal(t, []string{"Groceries", "Custom"}, resp.Categories)
}
