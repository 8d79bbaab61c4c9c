// Package bahttext spells out monetary amounts in Thai, the legal
// "amount in words" line printed on quotations, invoices and receipts.
//
// Amounts are read per digit position: each nonzero digit maps to a
// digit word plus a positional unit word (สิบ ร้อย พัน หมื่น แสน), with the
// position cycling modulo six and a ล้าน marker at every sixth boundary.
// Irregular readings (สิบ for a leading ten, ยี่สิบ for twenty, เอ็ด for a
// trailing one) follow standard Thai numeral grammar.
package bahttext

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Invalid is returned whenever the input cannot be read as a number.
// Callers render the sentinel as-is instead of failing the document.
const Invalid = "จำนวนเงินไม่ถูกต้อง"

// ZeroBaht is the reading of an exactly-zero amount.
const ZeroBaht = "ศูนย์บาทถ้วน"

var digitWords = [...]string{"ศูนย์", "หนึ่ง", "สอง", "สาม", "สี่", "ห้า", "หก", "เจ็ด", "แปด", "เก้า"}

var unitWords = [...]string{"", "สิบ", "ร้อย", "พัน", "หมื่น", "แสน", "ล้าน"}

// Text converts an amount in baht, with satang carried in the fraction.
// Non-finite values yield Invalid.
func Text(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Invalid
	}
	return Words(decimal.NewFromFloat(amount))
}

// Parse converts a human-entered amount string. Comma grouping is
// stripped first; anything that still fails to parse yields Invalid.
func Parse(s string) string {
	cleaned := strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Invalid
	}
	return Words(d)
}

// Words converts a decimal amount. The amount is first fixed to two
// fractional digits (rounding half away from zero, the StringFixed
// behavior) and then split into baht and satang digit strings, so the
// spoken form always matches the printed two-decimal figure.
func Words(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)
	negative := strings.HasPrefix(fixed, "-")
	if negative {
		fixed = fixed[1:]
	}
	baht, satang, _ := strings.Cut(fixed, ".")

	if allZero(baht) && allZero(satang) {
		return ZeroBaht
	}

	var b strings.Builder
	if negative {
		b.WriteString("ลบ")
	}
	bahtWords := integerWords(baht)
	if bahtWords == "" {
		bahtWords = digitWords[0]
	}
	b.WriteString(bahtWords)
	b.WriteString("บาท")
	if allZero(satang) {
		b.WriteString("ถ้วน")
	} else {
		b.WriteString(integerWords(satang))
		b.WriteString("สตางค์")
	}
	return b.String()
}

// integerWords reads a digit string most-significant-first. A zero digit
// contributes nothing, except at a million boundary below already-read
// digits, where the ล้าน marker must still be emitted (สิบล้าน for
// 10,000,000 even though the boundary digit itself is zero).
func integerWords(digits string) string {
	var b strings.Builder
	n := len(digits)
	seen := false
	for i := 0; i < n; i++ {
		d := int(digits[i] - '0')
		pos := n - 1 - i
		unit := pos % 6
		if d == 0 {
			if unit == 0 && pos > 0 && seen {
				b.WriteString(unitWords[6])
			}
			continue
		}
		switch {
		case unit == 1 && d == 1:
			// ten reads as bare สิบ
		case unit == 1 && d == 2:
			b.WriteString("ยี่")
		case unit == 0 && d == 1 && seen:
			b.WriteString("เอ็ด")
		default:
			b.WriteString(digitWords[d])
		}
		if unit > 0 {
			b.WriteString(unitWords[unit])
		}
		if unit == 0 && pos > 0 {
			b.WriteString(unitWords[6])
		}
		seen = true
	}
	return b.String()
}

func allZero(digits string) bool {
	for i := 0; i < len(digits); i++ {
		if digits[i] != '0' {
			return false
		}
	}
	return true
}
