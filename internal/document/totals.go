package document

import "github.com/shopspring/decimal"

// DefaultVATRate is the standard Thai VAT percentage, applied when a
// draft does not carry its own rate.
var DefaultVATRate = decimal.NewFromInt(7)

var oneHundred = decimal.NewFromInt(100)

// CalculateTotals computes the financial summary for a document.
//
// The subtotal is the sum of the line items; when there are none,
// manualSubtotal (if given) is used instead. VAT is charged on the
// post-discount base. Withholding tax is assessed on the same pre-VAT
// base but deducted from the VAT-inclusive total, per Thai invoicing
// convention.
//
// Rates are percentages (7 means 7%). No rounding happens here;
// presentation rounding is the renderer's concern.
func CalculateTotals(items []LineItem, discount, vatRate, whtRate decimal.Decimal, manualSubtotal *decimal.Decimal) Totals {
	subtotal := decimal.Zero
	switch {
	case len(items) > 0:
		for _, item := range items {
			subtotal = subtotal.Add(item.Total())
		}
	case manualSubtotal != nil:
		subtotal = *manualSubtotal
	}

	afterDiscount := subtotal.Sub(discount)
	vatAmount := afterDiscount.Mul(vatRate).Div(oneHundred)
	grandTotal := afterDiscount.Add(vatAmount)
	whtAmount := afterDiscount.Mul(whtRate).Div(oneHundred)
	netTotal := grandTotal.Sub(whtAmount)

	return Totals{
		Subtotal:      subtotal,
		Discount:      discount,
		AfterDiscount: afterDiscount,
		VATRate:       vatRate,
		VATAmount:     vatAmount,
		GrandTotal:    grandTotal,
		WHTRate:       whtRate,
		WHTAmount:     whtAmount,
		NetTotal:      netTotal,
	}
}

// Totals computes the summary for the draft, defaulting the VAT rate
// when the draft leaves it unset.
func (d Draft) Totals() Totals {
	vatRate := DefaultVATRate
	if d.VATRate != nil {
		vatRate = *d.VATRate
	}
	return CalculateTotals(d.Items, d.Discount, vatRate, d.WHTRate, d.ManualSubtotal)
}
