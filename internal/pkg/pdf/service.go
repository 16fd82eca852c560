// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/shopspring/decimal"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/order"
)

// Service renders order receipts
type Service struct {
	config *config.Config
	now    func() time.Time
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		now:    time.Now,
	}
}

// ReceiptData represents the data passed to the receipt template
type ReceiptData struct {
	ReceiptNumber string
	IssuedOn      string
	Order         order.Order
	Lines         []ReceiptLine
	Subtotal      string
	Discount      string
	HasDiscount   bool
	Tax           string
	Shipping      string
	Total         string
	Company       CompanyInfo
}

// ReceiptLine is one formatted order line
type ReceiptLine struct {
	Name      string
	Variant   string
	Quantity  int
	UnitPrice string
	Total     string
}

// CompanyInfo represents company information
type CompanyInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
	Website string
}

func money(v float64) string {
	return "$" + decimal.NewFromFloat(v).StringFixed(2)
}

// BuildReceiptData formats an order for the receipt template
func (s *Service) BuildReceiptData(o order.Order) ReceiptData {
	lines := make([]ReceiptLine, len(o.Items))
	for i, item := range o.Items {
		variant := item.Size
		if item.Color != "" {
			if variant != "" {
				variant += " / "
			}
			variant += item.Color
		}
		lineTotal := decimal.NewFromFloat(item.Product.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		lines[i] = ReceiptLine{
			Name:      item.Product.Name,
			Variant:   variant,
			Quantity:  item.Quantity,
			UnitPrice: money(item.Product.Price),
			Total:     "$" + lineTotal.StringFixed(2),
		}
	}

	return ReceiptData{
		ReceiptNumber: fmt.Sprintf("RCP-%s", o.Number),
		IssuedOn:      s.now().Format("January 2, 2006"),
		Order:         o,
		Lines:         lines,
		Subtotal:      money(o.Subtotal),
		Discount:      money(o.DiscountAmount),
		HasDiscount:   o.DiscountAmount > 0,
		Tax:           money(o.TaxAmount),
		Shipping:      money(o.ShippingCost),
		Total:         money(o.TotalAmount),
		Company: CompanyInfo{
			Name:    s.config.App.CompanyName,
			Address: s.config.App.CompanyAddress,
			Phone:   s.config.App.CompanyPhone,
			Email:   s.config.App.CompanyEmail,
			Website: s.config.App.CompanyWebsite,
		},
	}
}

// RenderHTML renders the receipt HTML for an order
func (s *Service) RenderHTML(o order.Order) (string, error) {
	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, s.BuildReceiptData(o)); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// GenerateReceipt generates a PDF receipt for an order. It needs the
// wkhtmltopdf binary on PATH.
func (s *Service) GenerateReceipt(o order.Order) (*bytes.Buffer, error) {
	htmlContent, err := s.RenderHTML(o)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

var receiptTemplate = template.Must(template.New("receipt").Parse(receiptHTML))

const receiptHTML = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.ReceiptNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #333; }
        .header { display: flex; justify-content: space-between; margin-bottom: 30px; border-bottom: 2px solid #eee; padding-bottom: 20px; }
        .company-info { flex: 1; }
        .receipt-info { text-align: right; flex: 1; }
        .receipt-title { font-size: 28px; font-weight: bold; color: #16a34a; margin-bottom: 10px; }
        .section-title { font-size: 16px; font-weight: bold; margin-bottom: 10px; color: #374151; }
        .items-table { width: 100%; border-collapse: collapse; margin-bottom: 30px; }
        .items-table th, .items-table td { border: 1px solid #ddd; padding: 12px 8px; text-align: left; }
        .items-table th { background-color: #f8f9fa; font-weight: bold; }
        .items-table .num { text-align: right; width: 80px; }
        .totals { float: right; width: 300px; }
        .totals table { width: 100%; border-collapse: collapse; }
        .totals td { padding: 8px; border-bottom: 1px solid #eee; }
        .totals .label { text-align: right; font-weight: bold; }
        .totals .amount { text-align: right; width: 100px; }
        .total-row { font-size: 18px; font-weight: bold; border-top: 2px solid #333 !important; }
        .footer { margin-top: 50px; padding-top: 20px; border-top: 1px solid #eee; text-align: center; color: #666; font-size: 12px; }
        .status-badge { display: inline-block; padding: 4px 8px; border-radius: 4px; font-size: 12px; font-weight: bold; text-transform: uppercase; background-color: #fef3c7; color: #92400e; }
    </style>
</head>
<body>
    <div class="header">
        <div class="company-info">
            <h1>{{.Company.Name}}</h1>
            <p>{{.Company.Address}}</p>
            <p>Phone: {{.Company.Phone}}</p>
            <p>Email: {{.Company.Email}}</p>
            <p>{{.Company.Website}}</p>
        </div>
        <div class="receipt-info">
            <div class="receipt-title">RECEIPT</div>
            <p><strong>Receipt #:</strong> {{.ReceiptNumber}}</p>
            <p><strong>Issued:</strong> {{.IssuedOn}}</p>
            <p><strong>Order #:</strong> {{.Order.Number}}</p>
            <p><strong>Placed:</strong> {{.Order.CreatedAt.Format "January 2, 2006"}}</p>
            <p><span class="status-badge">{{.Order.Status}}</span></p>
        </div>
    </div>

    <div>
        <div class="section-title">Ship To:</div>
        <p><strong>{{.Order.ShippingAddress.Name}}</strong></p>
        <p>{{.Order.ShippingAddress.Street}}</p>
        <p>{{.Order.ShippingAddress.City}}, {{.Order.ShippingAddress.State}} {{.Order.ShippingAddress.ZipCode}}</p>
        <p>{{.Order.ShippingAddress.Country}}</p>
        {{if .Order.PaymentMethod}}<p>Payment: {{.Order.PaymentMethod}}</p>{{end}}
        {{if .Order.EstimatedDelivery}}<p>Estimated delivery: {{.Order.EstimatedDelivery.Format "January 2, 2006"}}</p>{{end}}
    </div>

    <table class="items-table">
        <thead>
            <tr>
                <th>Item</th>
                <th class="num">Qty</th>
                <th class="num">Price</th>
                <th class="num">Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Lines}}
            <tr>
                <td>
                    <strong>{{.Name}}</strong>
                    {{if .Variant}}<br><small>{{.Variant}}</small>{{end}}
                </td>
                <td class="num">{{.Quantity}}</td>
                <td class="num">{{.UnitPrice}}</td>
                <td class="num">{{.Total}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <div class="totals">
        <table>
            <tr><td class="label">Subtotal:</td><td class="amount">{{.Subtotal}}</td></tr>
            {{if .HasDiscount}}<tr><td class="label">Discount:</td><td class="amount">-{{.Discount}}</td></tr>{{end}}
            <tr><td class="label">Shipping:</td><td class="amount">{{.Shipping}}</td></tr>
            <tr><td class="label">Tax:</td><td class="amount">{{.Tax}}</td></tr>
            <tr class="total-row"><td class="label">Total:</td><td class="amount">{{.Total}}</td></tr>
        </table>
    </div>

    <div style="clear: both;"></div>

    <div class="footer">
        <p>Thank you for shopping with us!</p>
        <p>Questions about this order? Contact us at {{.Company.Email}} or {{.Company.Phone}}</p>
    </div>
</body>
</html>
`
