package printer

// Header holds the café details printed at the top of a receipt.
type Header struct {
	CafeName string `json:"cafe_name"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// Line is a single item line on a receipt or kitchen ticket. Amounts are
// preformatted decimal strings so the formatter never does money math.
type Line struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price,omitempty"`
	Total     string `json:"total,omitempty"`
}

// Receipt is a printable customer receipt composed from a bill at print
// time. It is not persisted.
type Receipt struct {
	Header        Header `json:"header"`
	BillNo        string `json:"bill_no"`
	Date          string `json:"date"`
	Phone         string `json:"phone,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty"`
	Lines         []Line `json:"lines"`
	Subtotal      string `json:"subtotal"`
	Discount      string `json:"discount"`
	GrandTotal    string `json:"grand_total"`
}

// Render converts the receipt into an ESC/POS byte stream.
func (r *Receipt) Render() []byte {
	doc := NewDocument(32) // 58mm paper = 32 chars

	doc.SetAlign(AlignCenter).
		SetBold(true).
		SetFontSize(FontDouble).
		Text(r.Header.CafeName).
		SetFontSize(FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}

	doc.SetAlign(AlignLeft).
		Separator('-').
		KeyValue("Bill:", r.BillNo).
		KeyValue("Date:", r.Date)

	if r.Phone != "" {
		doc.KeyValue("Customer:", r.Phone)
	}
	if r.PaymentMethod != "" {
		doc.KeyValue("Payment:", r.PaymentMethod)
	}

	doc.Separator('-')

	for _, line := range r.Lines {
		doc.ItemLine(line.Quantity, line.Name, line.Total)
		if line.Quantity > 1 && line.UnitPrice != "" {
			doc.TextF("  @ %s each", line.UnitPrice)
		}
	}

	doc.Separator('-').
		KeyValue("Subtotal:", r.Subtotal)
	if r.Discount != "" && r.Discount != "0.00" {
		doc.KeyValue("Discount:", "-"+r.Discount)
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", r.GrandTotal).
		SetBold(false).
		Separator('-')

	doc.SetAlign(AlignCenter).
		LineFeed().
		Text("Thank you, visit again!").
		SetAlign(AlignLeft).
		FeedLines(3).
		PartialCut()

	return doc.Bytes()
}

// KOT is a kitchen order ticket: item names and quantities only, no
// prices, printed for the kitchen when a bill is created.
type KOT struct {
	BillNo string `json:"bill_no"`
	Date   string `json:"date"`
	Lines  []Line `json:"lines"`
}

// Render converts the kitchen ticket into an ESC/POS byte stream.
func (k *KOT) Render() []byte {
	doc := NewDocument(32)

	doc.SetAlign(AlignCenter).
		SetBold(true).
		SetFontSize(FontDouble).
		Text("KITCHEN ORDER").
		SetFontSize(FontNormal).
		SetBold(false).
		SetAlign(AlignLeft).
		Separator('=').
		KeyValue("Bill:", k.BillNo).
		KeyValue("Time:", k.Date).
		Separator('=')

	for _, line := range k.Lines {
		doc.SetBold(true).
			TextF("%2d x %s", line.Quantity, line.Name).
			SetBold(false)
	}

	doc.Separator('=').
		FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
