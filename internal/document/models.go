// Package document holds the draft model, financial totals calculation,
// numbering and validation for CRM financial documents.
package document

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind identifies the document flavor; it drives the printed title and
// the running-number prefix.
type Kind string

const (
	Quotation     Kind = "QUOTATION"
	Invoice       Kind = "INVOICE"
	TaxInvoice    Kind = "TAX_INVOICE"
	Receipt       Kind = "RECEIPT"
	PurchaseOrder Kind = "PURCHASE_ORDER"
)

// Valid reports whether k is a known document kind.
func (k Kind) Valid() bool {
	switch k {
	case Quotation, Invoice, TaxInvoice, Receipt, PurchaseOrder:
		return true
	}
	return false
}

// Prefix returns the running-number prefix, e.g. QT-2026-00042.
func (k Kind) Prefix() string {
	switch k {
	case Quotation:
		return "QT"
	case Invoice:
		return "IV"
	case TaxInvoice:
		return "TX"
	case Receipt:
		return "RC"
	case PurchaseOrder:
		return "PO"
	}
	return "DOC"
}

// Title returns the Thai document heading.
func (k Kind) Title() string {
	switch k {
	case Quotation:
		return "ใบเสนอราคา"
	case Invoice:
		return "ใบแจ้งหนี้"
	case TaxInvoice:
		return "ใบกำกับภาษี"
	case Receipt:
		return "ใบเสร็จรับเงิน"
	case PurchaseOrder:
		return "ใบสั่งซื้อ"
	}
	return "เอกสาร"
}

// Party is one side of the document, issuer or customer.
type Party struct {
	Name    string `json:"name"`
	TaxID   string `json:"taxId,omitempty"`
	Branch  string `json:"branch,omitempty"`
	Address string `json:"address,omitempty"`
	Postal  string `json:"postal,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// LineItem is one billed row. Fields beyond Description are optional;
// an explicit Amount overrides the quantity/price calculation outright.
// Price and UnitPrice are two names for the same thing that callers use
// interchangeably; Price wins when both are present.
type LineItem struct {
	Description string           `json:"description"`
	Quantity    decimal.Decimal  `json:"quantity"`
	Unit        string           `json:"unit,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unitPrice,omitempty"`
	Discount    *decimal.Decimal `json:"discount,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
}

// Total resolves the line's contribution to the subtotal. Missing
// numeric fields count as zero; a malformed line degrades to a zero
// contribution rather than an error.
func (li LineItem) Total() decimal.Decimal {
	if li.Amount != nil {
		return *li.Amount
	}
	price := decimal.Zero
	switch {
	case li.Price != nil:
		price = *li.Price
	case li.UnitPrice != nil:
		price = *li.UnitPrice
	}
	total := li.Quantity.Mul(price)
	if li.Discount != nil {
		total = total.Sub(*li.Discount)
	}
	return total
}

// Draft is a document as submitted for validation and rendering.
// Dates are YYYY-MM-DD strings, the shape the CRM frontend sends.
type Draft struct {
	Kind           Kind             `json:"kind"`
	DocNumber      string           `json:"docNumber,omitempty"`
	Issuer         Party            `json:"issuer"`
	Customer       Party            `json:"customer"`
	IssueDate      string           `json:"issueDate"`
	DueDate        string           `json:"dueDate,omitempty"`
	Currency       string           `json:"currency"`
	Reference      string           `json:"reference,omitempty"`
	Notes          string           `json:"notes,omitempty"`
	Items          []LineItem       `json:"items"`
	Discount       decimal.Decimal  `json:"discount"`
	VATRate        *decimal.Decimal `json:"vatRate,omitempty"`
	WHTRate        decimal.Decimal  `json:"whtRate"`
	ManualSubtotal *decimal.Decimal `json:"manualSubtotal,omitempty"`
}

// Totals is the financial summary block of a document. Every field is a
// pure function of the draft; nothing here is stored and re-mutated.
type Totals struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	AfterDiscount decimal.Decimal `json:"afterDiscount"`
	VATRate       decimal.Decimal `json:"vatRate"`
	VATAmount     decimal.Decimal `json:"vatAmount"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
	WHTRate       decimal.Decimal `json:"whtRate"`
	WHTAmount     decimal.Decimal `json:"whtAmount"`
	NetTotal      decimal.Decimal `json:"netTotal"`
}

// Issued captures the identity a draft receives when it is rendered.
type Issued struct {
	DocID     uuid.UUID `json:"docId"`
	DocNumber string    `json:"docNumber"`
	Kind      Kind      `json:"kind"`
	IssuedAt  time.Time `json:"issuedAt"`
}

// ValidationErrorItem is a single finding from the validator.
type ValidationErrorItem struct {
	Code     string `json:"code"`
	Path     string `json:"path"`
	Message  string `json:"message"`
	Severity string `json:"severity,omitempty"`
}

// ValidationResult bundles findings with the totals computed for the
// draft, so callers get the summary even when the draft is rejected.
type ValidationResult struct {
	Valid  bool                  `json:"valid"`
	Errors []ValidationErrorItem `json:"errors"`
	Totals Totals                `json:"totals"`
}
