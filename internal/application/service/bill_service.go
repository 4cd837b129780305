package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sangkips/cafebill-api/internal/domain/entity"
	"github.com/sangkips/cafebill-api/internal/domain/enum"
	"github.com/sangkips/cafebill-api/internal/domain/repository"
	"github.com/sangkips/cafebill-api/pkg/apperror"
	"github.com/sangkips/cafebill-api/pkg/billing"
	"github.com/sangkips/cafebill-api/pkg/money"
	"github.com/sangkips/cafebill-api/pkg/utils"
)

// BillService handles bill composition, persistence and lifecycle
type BillService struct {
	billRepo repository.BillRepository
	itemRepo repository.ItemRepository
	userRepo repository.UserRepository
}

// NewBillService creates a new bill service
func NewBillService(
	billRepo repository.BillRepository,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
) *BillService {
	return &BillService{
		billRepo: billRepo,
		itemRepo: itemRepo,
		userRepo: userRepo,
	}
}

// BillLineInput is one (item, quantity) pair of a bill request
type BillLineInput struct {
	ItemID   uuid.UUID
	Quantity int
}

// CreateBillInput represents the create bill input. Discount is a flat
// amount in rupees; percentage discounts are resolved to an amount by
// the quote step before submission.
type CreateBillInput struct {
	Phone         string
	CustomerName  string
	Items         []BillLineInput
	Discount      decimal.Decimal
	PaymentMethod string
	Status        string
}

// CreateBill resolves items authoritatively, recomputes all totals
// server-side and persists the bill with captured line prices.
func (s *BillService) CreateBill(ctx context.Context, input *CreateBillInput) (*entity.Bill, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Bill must contain at least one item")
	}

	method := enum.PaymentMethod(input.PaymentMethod)
	if !method.Valid() {
		return nil, apperror.NewBadRequestError("Unknown payment method")
	}

	status := enum.BillStatusPending
	if input.Status != "" {
		status = enum.BillStatus(input.Status)
		if !status.Valid() {
			return nil, apperror.NewBadRequestError("Unknown bill status")
		}
	}

	phone := utils.NormalizePhone(input.Phone)
	if phone == "" {
		return nil, apperror.NewBadRequestError("Customer phone is required")
	}

	selections, catalog, err := s.resolveLines(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	comp := billing.Compute(selections, catalog, billing.DiscountSpec{
		Mode: billing.DiscountAmount,
		Raw:  input.Discount.String(),
	})

	user, err := s.findOrCreateCustomer(ctx, phone, input.CustomerName)
	if err != nil {
		return nil, err
	}

	bill := &entity.Bill{
		BillNo:        utils.GenerateBillNo(),
		UserID:        user.ID,
		Phone:         phone,
		SubtotalPaise: comp.SubtotalPaise,
		DiscountPaise: comp.DiscountPaise,
		TotalPaise:    comp.GrandTotalPaise,
		PaymentMethod: method,
		Status:        status,
		Items:         linesToItems(comp.Lines),
	}

	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, err
	}
	bill.User = user
	return bill, nil
}

// UpdateBillInput represents the update bill input; nil fields keep
// their current value, a non-nil Items replaces the full line set.
type UpdateBillInput struct {
	Items         []BillLineInput
	Discount      *decimal.Decimal
	PaymentMethod *string
	Status        *string
}

// UpdateBill edits a pending bill and recomputes its totals from the
// current menu prices.
func (s *BillService) UpdateBill(ctx context.Context, id uuid.UUID, input *UpdateBillInput) (*entity.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	if bill.Status == enum.BillStatusCancelled {
		return nil, apperror.NewBadRequestError("Cancelled bills cannot be edited")
	}

	if input.PaymentMethod != nil {
		method := enum.PaymentMethod(*input.PaymentMethod)
		if !method.Valid() {
			return nil, apperror.NewBadRequestError("Unknown payment method")
		}
		bill.PaymentMethod = method
	}

	if input.Status != nil {
		status := enum.BillStatus(*input.Status)
		if !status.Valid() {
			return nil, apperror.NewBadRequestError("Unknown bill status")
		}
		bill.Status = status
	}

	discount := money.FromPaise(bill.DiscountPaise)
	if input.Discount != nil {
		discount = *input.Discount
	}

	if input.Items != nil {
		if len(input.Items) == 0 {
			return nil, apperror.NewBadRequestError("Bill must contain at least one item")
		}

		selections, catalog, err := s.resolveLines(ctx, input.Items)
		if err != nil {
			return nil, err
		}

		comp := billing.Compute(selections, catalog, billing.DiscountSpec{
			Mode: billing.DiscountAmount,
			Raw:  discount.String(),
		})

		if err := s.billRepo.ReplaceItems(ctx, bill.ID, linesToItems(comp.Lines)); err != nil {
			return nil, err
		}
		bill.SubtotalPaise = comp.SubtotalPaise
		bill.DiscountPaise = comp.DiscountPaise
		bill.TotalPaise = comp.GrandTotalPaise
		bill.Items = nil
	} else if input.Discount != nil {
		// Discount changed without touching the lines; reuse the stored subtotal
		spec := billing.DiscountSpec{Mode: billing.DiscountAmount, Raw: discount.String()}
		bill.DiscountPaise = spec.Amount(bill.SubtotalPaise)
		bill.TotalPaise = bill.SubtotalPaise - bill.DiscountPaise
	}

	if err := s.billRepo.Update(ctx, bill); err != nil {
		return nil, err
	}
	return s.billRepo.GetByID(ctx, bill.ID)
}

// UpdateStatus moves a bill through its lifecycle
func (s *BillService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*entity.Bill, error) {
	newStatus := enum.BillStatus(status)
	if !newStatus.Valid() {
		return nil, apperror.NewBadRequestError("Unknown bill status")
	}

	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}

	if err := s.billRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}
	bill.Status = newStatus
	return bill, nil
}

// DeleteBill soft-deletes a bill and its lines
func (s *BillService) DeleteBill(ctx context.Context, id uuid.UUID) error {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if bill == nil {
		return apperror.NewNotFoundError("Bill")
	}
	return s.billRepo.Delete(ctx, id)
}

// GetBill returns a bill with its lines and customer
func (s *BillService) GetBill(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// ListBills returns bills matching the filter
func (s *BillService) ListBills(ctx context.Context, params *repository.BillFilterParams) ([]entity.Bill, int64, error) {
	if params.Phone != "" {
		params.Phone = utils.NormalizePhone(params.Phone)
	}
	return s.billRepo.List(ctx, params)
}

// QuoteLine is one resolved line of a quote
type QuoteLine struct {
	ItemID    uuid.UUID `json:"item_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
	Total     float64   `json:"total"`
}

// QuoteResult is the computed preview of a bill in progress
type QuoteResult struct {
	Lines      []QuoteLine `json:"lines"`
	Subtotal   float64     `json:"subtotal"`
	Discount   float64     `json:"discount"`
	GrandTotal float64     `json:"grand_total"`
}

// QuoteInput represents a preview request: lines may still be
// unresolved while the bill is being composed.
type QuoteInput struct {
	Items        []BillLineInput
	DiscountMode string
	DiscountRaw  string
}

// Quote computes a bill preview without persisting anything. Lines
// whose item does not resolve are excluded from the totals.
func (s *BillService) Quote(ctx context.Context, input *QuoteInput) (*QuoteResult, error) {
	ids := make([]uuid.UUID, 0, len(input.Items))
	selections := make([]billing.LineSelection, 0, len(input.Items))
	for _, line := range input.Items {
		selections = append(selections, billing.LineSelection{
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		})
		if line.ItemID != uuid.Nil {
			ids = append(ids, line.ItemID)
		}
	}

	items, err := s.itemRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	catalog := make(billing.Catalog, len(items))
	for _, item := range items {
		catalog[item.ID] = billing.CatalogEntry{
			Name:       item.Name,
			UnitPaise:  item.PricePaise,
			CategoryID: item.CategoryID,
		}
	}

	mode := billing.DiscountMode(input.DiscountMode)
	if mode != billing.DiscountAmount {
		mode = billing.DiscountPercentage
	}

	comp := billing.Compute(selections, catalog, billing.DiscountSpec{Mode: mode, Raw: input.DiscountRaw})

	result := &QuoteResult{
		Lines:      make([]QuoteLine, 0, len(comp.Lines)),
		Subtotal:   money.Float(comp.SubtotalPaise),
		Discount:   money.Float(comp.DiscountPaise),
		GrandTotal: money.Float(comp.GrandTotalPaise),
	}
	for _, line := range comp.Lines {
		result.Lines = append(result.Lines, QuoteLine{
			ItemID:    line.ItemID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: money.Float(line.UnitPaise),
			Total:     money.Float(line.TotalPaise),
		})
	}
	return result, nil
}

// resolveLines validates every line against the menu. Unlike Quote,
// persistence requires every line to resolve.
func (s *BillService) resolveLines(ctx context.Context, lines []BillLineInput) ([]billing.LineSelection, billing.Catalog, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	selections := make([]billing.LineSelection, 0, len(lines))
	for _, line := range lines {
		if line.ItemID == uuid.Nil {
			return nil, nil, apperror.ErrUnresolvedItem
		}
		ids = append(ids, line.ItemID)
		selections = append(selections, billing.LineSelection{
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		})
	}

	items, err := s.itemRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	catalog := make(billing.Catalog, len(items))
	for _, item := range items {
		if !item.IsActive {
			return nil, nil, apperror.NewBadRequestError("Item " + item.Name + " is not available")
		}
		catalog[item.ID] = billing.CatalogEntry{
			Name:       item.Name,
			UnitPaise:  item.PricePaise,
			CategoryID: item.CategoryID,
		}
	}

	for _, id := range ids {
		if _, ok := catalog[id]; !ok {
			return nil, nil, apperror.ErrUnresolvedItem
		}
	}
	return selections, catalog, nil
}

func (s *BillService) findOrCreateCustomer(ctx context.Context, phone, name string) (*entity.User, error) {
	user, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if user != nil {
		if name != "" && user.Name == "" {
			user.Name = name
			if err := s.userRepo.Update(ctx, user); err != nil {
				return nil, err
			}
		}
		return user, nil
	}

	user = &entity.User{Phone: phone, Name: name}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if role, err := s.userRepo.GetRoleByName(ctx, "customer"); err == nil && role != nil {
		if err := s.userRepo.AssignRole(ctx, user.ID, role.ID); err != nil {
			return nil, err
		}
	}
	return user, nil
}

func linesToItems(lines []billing.LineTotal) []entity.BillItem {
	items := make([]entity.BillItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, entity.BillItem{
			ItemID:     line.ItemID,
			Name:       line.Name,
			UnitPaise:  line.UnitPaise,
			Quantity:   line.Quantity,
			TotalPaise: line.TotalPaise,
		})
	}
	return items
}
