package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/cafebill-api/internal/application/service"
	"github.com/sangkips/cafebill-api/internal/domain/enum"
	"github.com/sangkips/cafebill-api/internal/domain/repository"
	"github.com/sangkips/cafebill-api/internal/presentation/http/dto/request"
	"github.com/sangkips/cafebill-api/internal/presentation/http/dto/response"
	"github.com/sangkips/cafebill-api/pkg/pagination"
)

// BillHandler handles bill-related HTTP requests
type BillHandler struct {
	billService *service.BillService
	userService *service.UserService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billService *service.BillService, userService *service.UserService) *BillHandler {
	return &BillHandler{billService: billService, userService: userService}
}

// Create handles creating a bill
func (h *BillHandler) Create(c *gin.Context) {
	var req request.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	input := &service.CreateBillInput{
		Phone:         req.Phone,
		CustomerName:  req.Name,
		Items:         toLineInputs(req.Items),
		Discount:      req.Discount,
		PaymentMethod: req.PaymentMethod,
		Status:        req.Status,
	}

	bill, err := h.billService.CreateBill(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bill created successfully", bill)
}

// Update handles editing a bill
func (h *BillHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	var req request.UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	input := &service.UpdateBillInput{
		Discount:      req.Discount,
		PaymentMethod: req.PaymentMethod,
		Status:        req.Status,
	}
	if req.Items != nil {
		input.Items = toLineInputs(req.Items)
	}

	bill, err := h.billService.UpdateBill(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill updated successfully", bill)
}

// UpdateStatus moves a bill through its lifecycle
func (h *BillHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	var req request.UpdateBillStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	bill, err := h.billService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill status updated successfully", bill)
}

// Delete removes a bill
func (h *BillHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	if err := h.billService.DeleteBill(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill deleted successfully", nil)
}

// GetByID returns a single bill with its lines
func (h *BillHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("billId"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	bill, err := h.billService.GetBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", bill)
}

// List handles listing bills with status and phone filters
func (h *BillHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("limit", "15"))

	params := &repository.BillFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Phone:     c.Query("phone"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := enum.BillStatus(statusStr)
		if !status.Valid() {
			response.BadRequest(c, "Unknown bill status")
			return
		}
		params.Status = &status
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	bills, total, err := h.billService.ListBills(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	params.Pagination.Validate()
	result := pagination.NewPaginatedResult(bills, pagination.NewPagination(
		params.Pagination.Page, params.Pagination.PerPage, total,
	))
	response.SuccessWithPagination(c, 200, "Bills retrieved successfully", result)
}

// Quote previews bill totals without persisting anything
func (h *BillHandler) Quote(c *gin.Context) {
	var req request.QuoteBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	input := &service.QuoteInput{
		Items:        make([]service.BillLineInput, 0, len(req.Items)),
		DiscountMode: req.DiscountMode,
		DiscountRaw:  req.Discount,
	}
	for _, line := range req.Items {
		input.Items = append(input.Items, service.BillLineInput{
			ItemID:   line.Item,
			Quantity: line.Quantity,
		})
	}

	result, err := h.billService.Quote(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote computed successfully", result)
}

// SearchUsers finds customers by phone prefix for the bill composer.
// The seq query parameter is echoed back so the client can discard
// responses that arrive after a newer search was issued.
func (h *BillHandler) SearchUsers(c *gin.Context) {
	prefix := c.Query("phone")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	users, err := h.userService.SearchByPhone(c.Request.Context(), prefix, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithSeq(c, 200, "Users retrieved successfully", users, c.Query("seq"))
}

// GetUserByPhone returns the customer registered under the exact phone
func (h *BillHandler) GetUserByPhone(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		response.BadRequest(c, "phone query parameter is required")
		return
	}

	user, err := h.userService.GetByPhone(c.Request.Context(), phone)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User retrieved successfully", user)
}

func toLineInputs(lines []request.BillLineRequest) []service.BillLineInput {
	inputs := make([]service.BillLineInput, 0, len(lines))
	for _, line := range lines {
		inputs = append(inputs, service.BillLineInput{
			ItemID:   line.Item,
			Quantity: line.Quantity,
		})
	}
	return inputs
}
