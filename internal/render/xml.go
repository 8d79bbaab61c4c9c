package render

import (
	"encoding/xml"
	"fmt"

	"github.com/tanakrit-dev/thaidoc/internal/bahttext"
	"github.com/tanakrit-dev/thaidoc/internal/document"
)

type xmlParty struct {
	Name    string `xml:"Name"`
	TaxID   string `xml:"TaxID,omitempty"`
	Branch  string `xml:"Branch,omitempty"`
	Address string `xml:"Address,omitempty"`
	Postal  string `xml:"Postal,omitempty"`
}

type xmlLine struct {
	Seq         int    `xml:"seq,attr"`
	Description string `xml:"Description"`
	Quantity    string `xml:"Quantity"`
	Unit        string `xml:"Unit,omitempty"`
	UnitPrice   string `xml:"UnitPrice"`
	Amount      string `xml:"Amount"`
}

type xmlTotals struct {
	Subtotal      string `xml:"Subtotal"`
	Discount      string `xml:"Discount"`
	AfterDiscount string `xml:"AfterDiscount"`
	VATRate       string `xml:"VATRate"`
	VATAmount     string `xml:"VATAmount"`
	GrandTotal    string `xml:"GrandTotal"`
	WHTRate       string `xml:"WHTRate"`
	WHTAmount     string `xml:"WHTAmount"`
	NetTotal      string `xml:"NetTotal"`
}

type xmlDocument struct {
	XMLName     xml.Name  `xml:"TaxDocument"`
	Kind        string    `xml:"kind,attr"`
	DocID       string    `xml:"DocID"`
	DocNumber   string    `xml:"DocNumber"`
	IssueDate   string    `xml:"IssueDate"`
	DueDate     string    `xml:"DueDate,omitempty"`
	Currency    string    `xml:"Currency"`
	Reference   string    `xml:"Reference,omitempty"`
	Issuer      xmlParty  `xml:"Issuer"`
	Customer    xmlParty  `xml:"Customer"`
	Lines       []xmlLine `xml:"Lines>Line"`
	Totals      xmlTotals `xml:"Totals"`
	AmountWords string    `xml:"AmountWords"`
}

// XML marshals the stamped document for downstream accounting systems.
// Monetary figures are fixed to two decimals, matching the printed page.
func XML(issued document.Issued, draft document.Draft, totals document.Totals) (string, error) {
	doc := xmlDocument{
		Kind:      string(draft.Kind),
		DocID:     issued.DocID.String(),
		DocNumber: issued.DocNumber,
		IssueDate: draft.IssueDate,
		DueDate:   draft.DueDate,
		Currency:  draft.Currency,
		Reference: draft.Reference,
		Issuer:    toXMLParty(draft.Issuer),
		Customer:  toXMLParty(draft.Customer),
		Totals: xmlTotals{
			Subtotal:      totals.Subtotal.StringFixed(2),
			Discount:      totals.Discount.StringFixed(2),
			AfterDiscount: totals.AfterDiscount.StringFixed(2),
			VATRate:       totals.VATRate.String(),
			VATAmount:     totals.VATAmount.StringFixed(2),
			GrandTotal:    totals.GrandTotal.StringFixed(2),
			WHTRate:       totals.WHTRate.String(),
			WHTAmount:     totals.WHTAmount.StringFixed(2),
			NetTotal:      totals.NetTotal.StringFixed(2),
		},
		AmountWords: bahttext.Words(totals.NetTotal),
	}

	for i, line := range draft.Items {
		doc.Lines = append(doc.Lines, xmlLine{
			Seq:         i + 1,
			Description: line.Description,
			Quantity:    line.Quantity.String(),
			Unit:        line.Unit,
			UnitPrice:   linePrice(line).StringFixed(2),
			Amount:      line.Total().StringFixed(2),
		})
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}
	return xml.Header + string(out), nil
}

func toXMLParty(p document.Party) xmlParty {
	return xmlParty{
		Name:    p.Name,
		TaxID:   p.TaxID,
		Branch:  p.Branch,
		Address: p.Address,
		Postal:  p.Postal,
	}
}
