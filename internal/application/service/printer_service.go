package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cafebill-api/internal/config"
	"github.com/sangkips/cafebill-api/internal/domain/entity"
	"github.com/sangkips/cafebill-api/internal/domain/repository"
	"github.com/sangkips/cafebill-api/pkg/apperror"
	"github.com/sangkips/cafebill-api/pkg/money"
	"github.com/sangkips/cafebill-api/pkg/printer"
)

// PrinterService renders bills as receipts and kitchen tickets and
// sends them to the configured thermal printer
type PrinterService struct {
	billRepo repository.BillRepository
	device   printer.Printer
	header   printer.Header
}

// NewPrinterService creates a new printer service
func NewPrinterService(billRepo repository.BillRepository, device printer.Printer, cafe config.CafeConfig) *PrinterService {
	return &PrinterService{
		billRepo: billRepo,
		device:   device,
		header: printer.Header{
			CafeName: cafe.Name,
			Address:  cafe.Address,
			Phone:    cafe.Phone,
		},
	}
}

// BuildReceipt composes a printable receipt from a stored bill
func (s *PrinterService) BuildReceipt(ctx context.Context, billID uuid.UUID) (*printer.Receipt, error) {
	bill, err := s.loadBill(ctx, billID)
	if err != nil {
		return nil, err
	}

	receipt := &printer.Receipt{
		Header:        s.header,
		BillNo:        bill.BillNo,
		Date:          bill.CreatedAt.Format("02 Jan 2006 15:04"),
		Phone:         bill.Phone,
		PaymentMethod: bill.PaymentMethod.String(),
		Lines:         billLines(bill, true),
		Subtotal:      money.Format(bill.SubtotalPaise),
		Discount:      money.Format(bill.DiscountPaise),
		GrandTotal:    money.Format(bill.TotalPaise),
	}
	return receipt, nil
}

// PrintReceipt renders and prints the customer receipt for a bill
func (s *PrinterService) PrintReceipt(ctx context.Context, billID uuid.UUID) error {
	receipt, err := s.BuildReceipt(ctx, billID)
	if err != nil {
		return err
	}
	return s.device.Print(receipt.Render())
}

// PrintKOT renders and prints the kitchen ticket for a bill
func (s *PrinterService) PrintKOT(ctx context.Context, billID uuid.UUID) error {
	bill, err := s.loadBill(ctx, billID)
	if err != nil {
		return err
	}

	kot := &printer.KOT{
		BillNo: bill.BillNo,
		Date:   bill.CreatedAt.Format("15:04"),
		Lines:  billLines(bill, false),
	}
	return s.device.Print(kot.Render())
}

// PrintTest prints a short test page to verify the printer setup
func (s *PrinterService) PrintTest() error {
	doc := printer.NewDocument(32)
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		Text(s.header.CafeName).
		SetBold(false).
		Text("PRINTER TEST").
		Separator('-').
		Text(time.Now().Format("02 Jan 2006 15:04:05")).
		FeedLines(3).
		PartialCut()
	return s.device.Print(doc.Bytes())
}

// Connected reports whether the printer is reachable
func (s *PrinterService) Connected() bool {
	return s.device.IsConnected()
}

func (s *PrinterService) loadBill(ctx context.Context, billID uuid.UUID) (*entity.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

func billLines(bill *entity.Bill, withPrices bool) []printer.Line {
	lines := make([]printer.Line, 0, len(bill.Items))
	for _, item := range bill.Items {
		line := printer.Line{
			Name:     item.Name,
			Quantity: item.Quantity,
		}
		if withPrices {
			line.UnitPrice = money.Format(item.UnitPaise)
			line.Total = money.Format(item.TotalPaise)
		}
		lines = append(lines, line)
	}
	return lines
}
