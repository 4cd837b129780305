package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/cafebill-api/internal/application/service"
	"github.com/sangkips/cafebill-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles receipt and kitchen ticket printing
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// Receipt returns the composed receipt for a bill without printing it
func (h *PrinterHandler) Receipt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	receipt, err := h.printerService.BuildReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt composed successfully", receipt)
}

// PrintReceipt prints the customer receipt for a bill
func (h *PrinterHandler) PrintReceipt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	if err := h.printerService.PrintReceipt(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt sent to printer", nil)
}

// PrintKOT prints the kitchen ticket for a bill
func (h *PrinterHandler) PrintKOT(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	if err := h.printerService.PrintKOT(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Kitchen ticket sent to printer", nil)
}

// TestPrint sends a test page to the printer
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	if err := h.printerService.PrintTest(); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Test page sent to printer", nil)
}

// Status reports whether the configured printer is reachable
func (h *PrinterHandler) Status(c *gin.Context) {
	response.OK(c, "Printer status", gin.H{
		"connected": h.printerService.Connected(),
	})
}
