package render

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tanakrit-dev/thaidoc/internal/document"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}

func sampleDraft(t *testing.T) document.Draft {
	price := dec(t, "500")
	discount := dec(t, "100")
	wht := dec(t, "3")
	return document.Draft{
		Kind:      document.TaxInvoice,
		IssueDate: "2026-08-01",
		DueDate:   "2026-08-31",
		Currency:  "THB",
		Issuer:    document.Party{Name: "บริษัท ตัวอย่าง จำกัด", TaxID: "0105536112233", Address: "กรุงเทพมหานคร", Postal: "10110"},
		Customer:  document.Party{Name: "ลูกค้าทดสอบ", Address: "เชียงใหม่"},
		Items: []document.LineItem{
			{Description: "ค่าบริการรายเดือน", Quantity: dec(t, "2"), Unit: "เดือน", Price: &price},
		},
		Discount: discount,
		WHTRate:  wht,
	}
}

func sampleIssued() document.Issued {
	return document.Issued{
		DocID:     uuid.New(),
		DocNumber: "TX-2026-00001",
		Kind:      document.TaxInvoice,
		IssuedAt:  time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestHTML(t *testing.T) {
	draft := sampleDraft(t)
	html, err := HTML(sampleIssued(), draft, draft.Totals())
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}

	// subtotal 1000, discount 100, after 900, VAT 63, grand 963, WHT 27, net 936
	for _, want := range []string{
		"ใบกำกับภาษี",
		"TX-2026-00001",
		"01/08/2569", // Buddhist-era issue date
		"1,000.00",
		"963.00",
		"936.00",
		"เก้าร้อยสามสิบหกบาทถ้วน", // net total in words
		"เลขประจำตัวผู้เสียภาษี 0105536112233",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered HTML missing %q", want)
		}
	}
}

func TestHTMLOmitsEmptySections(t *testing.T) {
	draft := sampleDraft(t)
	draft.Discount = decimal.Zero
	draft.WHTRate = decimal.Zero
	html, err := HTML(sampleIssued(), draft, draft.Totals())
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if strings.Contains(html, "ส่วนลด") {
		t.Errorf("discount row rendered for zero discount")
	}
	if strings.Contains(html, "หักภาษี ณ ที่จ่าย") {
		t.Errorf("WHT row rendered for zero rate")
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"1070", "1,070.00"},
		{"1234567.891", "1,234,567.89"},
		{"-9999.5", "-9,999.50"},
		{"999", "999.00"},
	}
	for _, tt := range tests {
		if got := formatMoney(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("formatMoney(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestThaiDate(t *testing.T) {
	if got := thaiDate("2026-01-15"); got != "15/01/2569" {
		t.Errorf("thaiDate = %s", got)
	}
	if got := thaiDate("not-a-date"); got != "not-a-date" {
		t.Errorf("unparseable date must pass through, got %s", got)
	}
	if got := thaiDate(""); got != "" {
		t.Errorf("empty date must stay empty, got %s", got)
	}
}
