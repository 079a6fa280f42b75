package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"spendlog/internal/dto"
	"spendlog/internal/models"
	"spendlog/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ExpenseStore is the slice of the expense repository the service needs.
type ExpenseStore interface {
	Create(ctx context.Context, e *models.Expense) error
	List(ctx context.Context, f repository.ExpenseFilter) ([]models.Expense, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Expense, error)
	Update(ctx context.Context, id, userID uuid.UUID, upd repository.ExpenseUpdate) (*models.Expense, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type ExpenseService struct {
	expenses   ExpenseStore
	categories models.CategorySet
	logger     *zap.Logger
}

func NewExpenseService(expenses ExpenseStore, categories models.CategorySet, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{
		expenses:   expenses,
		categories: categories,
		logger:     logger,
	}
}

// ListParams are the already-type-coerced list filters from the HTTP layer.
type ListParams struct {
	From     string
	To       string
	Category string
	Limit    int
	Offset   int
}

func (s *ExpenseService) List(ctx context.Context, userID uuid.UUID, p ListParams) (*dto.ExpenseListResponse, error) {
	expenses, err := s.expenses.List(ctx, repository.ExpenseFilter{
		UserID:   userID,
		From:     p.From,
		To:       p.To,
		Category: p.Category,
		Limit:    p.Limit,
		Offset:   p.Offset,
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		out = append(out, toExpenseResponse(&expenses[i]))
	}

	return &dto.ExpenseListResponse{Expenses: out}, nil
}

func (s *ExpenseService) Get(ctx context.Context, id, userID uuid.UUID) (*dto.ExpenseResponse, error) {
	e, err := s.expenses.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	resp := toExpenseResponse(e)
	return &resp, nil
}

func (s *ExpenseService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	now := time.Now()

	date := truncateDate(req.Date)
	if date == "" {
		date = now.Format("2006-01-02")
	}

	e := &models.Expense{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      req.Amount,
		Category:    s.categories.Normalize(req.Category),
		Description: trimToNil(req.Description),
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.expenses.Create(ctx, e); err != nil {
		return nil, err
	}

	resp := toExpenseResponse(e)
	return &resp, nil
}

func (s *ExpenseService) Update(ctx context.Context, id, userID uuid.UUID, req *dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	// Existence probe first: a miss is a 404 before any statement is built.
	current, err := s.expenses.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	upd := s.compileUpdate(req)
	if upd.Empty() {
		// No supplied fields: return the row unchanged, no write.
		resp := toExpenseResponse(current)
		return &resp, nil
	}

	e, err := s.expenses.Update(ctx, id, userID, upd)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	resp := toExpenseResponse(e)
	return &resp, nil
}

// compileUpdate maps the three-state request fields onto update clauses.
// Category goes through the same allow-list fallback as creation, and a
// null or blank description becomes a real NULL.
func (s *ExpenseService) compileUpdate(req *dto.UpdateExpenseRequest) repository.ExpenseUpdate {
	var upd repository.ExpenseUpdate

	if req.Amount.Present && !req.Amount.Null {
		amount := req.Amount.Value
		upd.Amount = &amount
	}
	if req.Category.Present {
		// A supplied null lands in the fallback bucket like any other
		// unrecognized value; the column itself never goes NULL.
		value := ""
		if !req.Category.Null {
			value = req.Category.Value
		}
		category := s.categories.Normalize(value)
		upd.Category = &category
	}
	if req.Description.Present {
		upd.SetDescription = true
		if !req.Description.Null {
			upd.Description = trimToNil(req.Description.Value)
		}
	}
	if req.Date.Present && !req.Date.Null {
		date := truncateDate(req.Date.Value)
		upd.Date = &date
	}

	return upd
}

func (s *ExpenseService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.expenses.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *ExpenseService) Categories() *dto.CategoriesResponse {
	return &dto.CategoriesResponse{Categories: s.categories.Names()}
}

func toExpenseResponse(e *models.Expense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:          e.ID.String(),
		Amount:      e.Amount,
		Category:    e.Category,
		Description: e.Description,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// truncateDate normalizes any ISO timestamp to its YYYY-MM-DD prefix.
func truncateDate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

func trimToNil(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
