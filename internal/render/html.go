// Package render turns drafts into printable artifacts: an HTML layout,
// a PDF printed through headless Chromium, and an XML export for
// downstream accounting systems.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tanakrit-dev/thaidoc/internal/bahttext"
	"github.com/tanakrit-dev/thaidoc/internal/document"
)

// Artifact is a rendered document ready to be stored or sent.
type Artifact struct {
	Name        string
	Body        []byte
	ContentType string
}

type htmlLine struct {
	Description string
	Quantity    string
	Unit        string
	Price       string
	Amount      string
}

type htmlTotals struct {
	Subtotal      string
	Discount      string
	AfterDiscount string
	VATLabel      string
	VATAmount     string
	GrandTotal    string
	WHTLabel      string
	WHTAmount     string
	NetTotal      string
	ShowDiscount  bool
	ShowWHT       bool
}

type htmlData struct {
	Title       string
	DocNumber   string
	IssueDate   string
	DueDate     string
	Reference   string
	Notes       string
	Issuer      document.Party
	Customer    document.Party
	Lines       []htmlLine
	Totals      htmlTotals
	AmountWords string
	Now         string
}

// HTML renders the printable page for a stamped draft. All money and
// date formatting happens here; the totals themselves arrive unrounded.
func HTML(issued document.Issued, draft document.Draft, totals document.Totals) (string, error) {
	data := htmlData{
		Title:       draft.Kind.Title(),
		DocNumber:   issued.DocNumber,
		IssueDate:   thaiDate(draft.IssueDate),
		DueDate:     thaiDate(draft.DueDate),
		Reference:   draft.Reference,
		Notes:       draft.Notes,
		Issuer:      draft.Issuer,
		Customer:    draft.Customer,
		AmountWords: bahttext.Words(totals.NetTotal),
		Now:         issued.IssuedAt.Format("02/01/2006 15:04"),
	}

	for _, line := range draft.Items {
		data.Lines = append(data.Lines, htmlLine{
			Description: line.Description,
			Quantity:    line.Quantity.String(),
			Unit:        line.Unit,
			Price:       formatMoney(linePrice(line)),
			Amount:      formatMoney(line.Total()),
		})
	}

	data.Totals = htmlTotals{
		Subtotal:      formatMoney(totals.Subtotal),
		Discount:      formatMoney(totals.Discount),
		AfterDiscount: formatMoney(totals.AfterDiscount),
		VATLabel:      fmt.Sprintf("ภาษีมูลค่าเพิ่ม %s%%", totals.VATRate.String()),
		VATAmount:     formatMoney(totals.VATAmount),
		GrandTotal:    formatMoney(totals.GrandTotal),
		WHTLabel:      fmt.Sprintf("หักภาษี ณ ที่จ่าย %s%%", totals.WHTRate.String()),
		WHTAmount:     formatMoney(totals.WHTAmount),
		NetTotal:      formatMoney(totals.NetTotal),
		ShowDiscount:  !totals.Discount.IsZero(),
		ShowWHT:       !totals.WHTRate.IsZero(),
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

func linePrice(line document.LineItem) decimal.Decimal {
	switch {
	case line.Price != nil:
		return *line.Price
	case line.UnitPrice != nil:
		return *line.UnitPrice
	}
	return decimal.Zero
}

// formatMoney prints a two-decimal figure with comma grouping.
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}
	out := b.String() + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}

// thaiDate converts YYYY-MM-DD to DD/MM/YYYY in the Buddhist era.
// Unparseable input passes through untouched.
func thaiDate(s string) string {
	if s == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return fmt.Sprintf("%02d/%02d/%d", t.Day(), int(t.Month()), t.Year()+543)
}

var pageTemplate = template.Must(template.New("document").Parse(htmlTemplate))

var htmlTemplate = `
<!doctype html>
<html lang="th">
<head>
  <meta charset="utf-8" />
  <style>
    body { font-family: 'Sarabun', 'Noto Sans Thai', sans-serif; margin: 24px; color: #1e293b; }
    h1 { margin: 0 0 4px; font-size: 22px; }
    .meta { display: flex; justify-content: space-between; margin-bottom: 16px; }
    .card { border: 1px solid #e2e8f0; border-radius: 8px; padding: 12px; margin-bottom: 12px; }
    .row { display: flex; gap: 12px; }
    .col { flex: 1; }
    .label { font-size: 11px; color: #64748b; }
    .value { font-size: 13px; margin-bottom: 3px; }
    table { width: 100%; border-collapse: collapse; margin-top: 8px; }
    th, td { padding: 7px; border-bottom: 1px solid #e2e8f0; text-align: left; font-size: 13px; }
    th { background: #f8fafc; }
    .num { text-align: right; }
    .totals { display: flex; justify-content: flex-end; margin-top: 12px; }
    .totals .box { min-width: 260px; font-size: 13px; }
    .totals .line { display: flex; justify-content: space-between; padding: 2px 0; }
    .totals .grand { font-weight: 700; border-top: 1px solid #94a3b8; margin-top: 4px; padding-top: 4px; }
    .words { margin-top: 10px; font-size: 13px; font-style: italic; }
  </style>
</head>
<body>
  <div class="meta">
    <div>
      <h1>{{.Title}}</h1>
      <div class="label">เลขที่เอกสาร</div>
      <div class="value">{{.DocNumber}}</div>
      {{if .Reference}}<div class="label">อ้างอิง</div><div class="value">{{.Reference}}</div>{{end}}
    </div>
    <div style="text-align:right">
      <div class="label">วันที่ออกเอกสาร</div>
      <div class="value">{{.IssueDate}}</div>
      {{if .DueDate}}<div class="label">ครบกำหนด</div><div class="value">{{.DueDate}}</div>{{end}}
      <div class="label">พิมพ์เมื่อ</div>
      <div class="value">{{.Now}}</div>
    </div>
  </div>

  <div class="card">
    <div class="row">
      <div class="col">
        <div class="label">ผู้ออกเอกสาร</div>
        <div class="value">{{.Issuer.Name}}{{if .Issuer.Branch}} ({{.Issuer.Branch}}){{end}}</div>
        <div class="value">{{.Issuer.Address}} {{.Issuer.Postal}}</div>
        {{if .Issuer.TaxID}}<div class="value">เลขประจำตัวผู้เสียภาษี {{.Issuer.TaxID}}</div>{{end}}
      </div>
      <div class="col">
        <div class="label">ลูกค้า</div>
        <div class="value">{{.Customer.Name}}{{if .Customer.Branch}} ({{.Customer.Branch}}){{end}}</div>
        <div class="value">{{.Customer.Address}} {{.Customer.Postal}}</div>
        {{if .Customer.TaxID}}<div class="value">เลขประจำตัวผู้เสียภาษี {{.Customer.TaxID}}</div>{{end}}
      </div>
    </div>
  </div>

  <table>
    <thead>
      <tr>
        <th>รายการ</th>
        <th class="num">จำนวน</th>
        <th class="num">ราคาต่อหน่วย</th>
        <th class="num">จำนวนเงิน</th>
      </tr>
    </thead>
    <tbody>
    {{range .Lines}}
      <tr>
        <td>{{.Description}}</td>
        <td class="num">{{.Quantity}} {{.Unit}}</td>
        <td class="num">{{.Price}}</td>
        <td class="num">{{.Amount}}</td>
      </tr>
    {{end}}
    </tbody>
  </table>

  <div class="totals">
    <div class="box">
      <div class="line"><div>รวมเป็นเงิน</div><div>{{.Totals.Subtotal}}</div></div>
      {{if .Totals.ShowDiscount}}
      <div class="line"><div>ส่วนลด</div><div>{{.Totals.Discount}}</div></div>
      <div class="line"><div>ยอดหลังหักส่วนลด</div><div>{{.Totals.AfterDiscount}}</div></div>
      {{end}}
      <div class="line"><div>{{.Totals.VATLabel}}</div><div>{{.Totals.VATAmount}}</div></div>
      <div class="line grand"><div>รวมทั้งสิ้น</div><div>{{.Totals.GrandTotal}}</div></div>
      {{if .Totals.ShowWHT}}
      <div class="line"><div>{{.Totals.WHTLabel}}</div><div>{{.Totals.WHTAmount}}</div></div>
      <div class="line grand"><div>ยอดชำระสุทธิ</div><div>{{.Totals.NetTotal}}</div></div>
      {{end}}
    </div>
  </div>

  <div class="words">({{.AmountWords}})</div>

  {{if .Notes}}
  <div class="card">
    <div class="label">หมายเหตุ</div>
    <div class="value">{{.Notes}}</div>
  </div>
  {{end}}
</body>
</html>
`
