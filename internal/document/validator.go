package document

import (
	"fmt"
	"strings"
	"time"
)

// Validator runs structural checks on a draft before rendering. It is
// advisory: totals are computed and returned even for rejected drafts,
// and nothing here ever panics or errors out.
type Validator struct {
	Config Config
}

func (v Validator) Validate(draft Draft) ValidationResult {
	errors := make([]ValidationErrorItem, 0)

	if !draft.Kind.Valid() {
		errors = append(errors, errItem("TH-DOC-REQ-001", "kind", fmt.Sprintf("Unknown document kind %q", draft.Kind)))
	}
	if draft.Issuer.Name == "" || draft.Customer.Name == "" {
		errors = append(errors, errItem("TH-DOC-REQ-002", "issuer.name/customer.name", "Issuer and customer names are required"))
	}
	if draft.Kind == TaxInvoice && !validTaxID(draft.Issuer.TaxID) {
		errors = append(errors, errItem("TH-DOC-TAX-001", "issuer.taxId", "Tax invoices require a 13-digit issuer tax ID"))
	}
	if draft.Customer.TaxID != "" && !validTaxID(draft.Customer.TaxID) {
		errors = append(errors, errItem("TH-DOC-TAX-002", "customer.taxId", "Customer tax ID must be 13 digits"))
	}

	issue, issueErr := time.Parse("2006-01-02", draft.IssueDate)
	if issueErr != nil {
		errors = append(errors, errItem("TH-DOC-REQ-003", "issueDate", "Issue date is required as YYYY-MM-DD"))
	}
	if draft.DueDate != "" {
		due, dueErr := time.Parse("2006-01-02", draft.DueDate)
		if dueErr != nil {
			errors = append(errors, errItem("TH-DOC-REQ-004", "dueDate", "Due date must be YYYY-MM-DD"))
		} else if issueErr == nil && due.Before(issue) {
			errors = append(errors, errItem("TH-DOC-DATE-001", "dueDate", "Due date must be on or after issue date"))
		}
	}

	if draft.Currency != v.Config.Currency {
		errors = append(errors, errItem("TH-DOC-REQ-005", "currency", fmt.Sprintf("Only %s is supported", v.Config.Currency)))
	}

	if len(draft.Items) == 0 && draft.ManualSubtotal == nil {
		errors = append(errors, errItem("TH-DOC-REQ-006", "items", "At least one line item or a manual subtotal is required"))
	}
	if len(draft.Items) > v.Config.MaxLines {
		errors = append(errors, errItem("TH-DOC-LIMIT-001", "items", fmt.Sprintf("Too many lines (max %d)", v.Config.MaxLines)))
	}

	for i, line := range draft.Items {
		path := fmt.Sprintf("items[%d]", i)
		if strings.TrimSpace(line.Description) == "" {
			errors = append(errors, errItem("TH-DOC-REQ-007", path+".description", "Description is required"))
		}
		if len(line.Description) > v.Config.MaxDescription {
			errors = append(errors, errItem("TH-DOC-LIMIT-002", path+".description", "Description too long"))
		}
		if line.Amount == nil && !line.Quantity.IsPositive() {
			errors = append(errors, errItem("TH-DOC-MATH-001", path+".quantity", "Quantity must be positive"))
		}
		if line.Price != nil && line.Price.IsNegative() {
			errors = append(errors, errItem("TH-DOC-MATH-002", path+".price", "Price must be non-negative"))
		}
		if line.UnitPrice != nil && line.UnitPrice.IsNegative() {
			errors = append(errors, errItem("TH-DOC-MATH-003", path+".unitPrice", "Unit price must be non-negative"))
		}
	}

	if draft.VATRate != nil && (draft.VATRate.IsNegative() || draft.VATRate.GreaterThan(oneHundred)) {
		errors = append(errors, errItem("TH-DOC-MATH-004", "vatRate", "VAT rate must be between 0 and 100"))
	}
	if draft.WHTRate.IsNegative() || draft.WHTRate.GreaterThan(oneHundred) {
		errors = append(errors, errItem("TH-DOC-MATH-005", "whtRate", "WHT rate must be between 0 and 100"))
	}

	totals := draft.Totals()
	if totals.AfterDiscount.IsNegative() {
		errors = append(errors, warnItem("TH-DOC-MATH-006", "discount", "Discount exceeds subtotal"))
	}

	valid := true
	for _, e := range errors {
		if e.Severity != "warning" {
			valid = false
			break
		}
	}

	return ValidationResult{
		Valid:  valid,
		Errors: errors,
		Totals: totals,
	}
}

func errItem(code, path, message string) ValidationErrorItem {
	return ValidationErrorItem{Code: code, Path: path, Message: message}
}

func warnItem(code, path, message string) ValidationErrorItem {
	return ValidationErrorItem{Code: code, Path: path, Message: message, Severity: "warning"}
}

// validTaxID accepts the 13-digit Thai taxpayer identification number.
func validTaxID(id string) bool {
	if len(id) != 13 {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return false
		}
	}
	return true
}
