package bahttext

import (
	"math"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestText(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"zero", 0, "ศูนย์บาทถ้วน"},
		{"one", 1, "หนึ่งบาทถ้วน"},
		{"five", 5, "ห้าบาทถ้วน"},
		{"ten", 10, "สิบบาทถ้วน"},
		{"eleven", 11, "สิบเอ็ดบาทถ้วน"},
		{"twenty", 20, "ยี่สิบบาทถ้วน"},
		{"twenty one", 21, "ยี่สิบเอ็ดบาทถ้วน"},
		{"hundred", 100, "หนึ่งร้อยบาทถ้วน"},
		{"hundred and one", 101, "หนึ่งร้อยเอ็ดบาทถ้วน"},
		{"hundred eleven", 111, "หนึ่งร้อยสิบเอ็ดบาทถ้วน"},
		{"doc example", 121.50, "หนึ่งร้อยยี่สิบเอ็ดบาทห้าสิบสตางค์"},
		{"satang only", 0.25, "ศูนย์บาทยี่สิบห้าสตางค์"},
		{"single satang", 0.05, "ศูนย์บาทห้าสตางค์"},
		{"one satang", 1.01, "หนึ่งบาทหนึ่งสตางค์"},
		{"thousand", 1234.50, "หนึ่งพันสองร้อยสามสิบสี่บาทห้าสิบสตางค์"},
		{"million", 1000000, "หนึ่งล้านบาทถ้วน"},
		{"ten million keeps marker", 10000000, "สิบล้านบาทถ้วน"},
		{"eleven million", 11000000, "สิบเอ็ดล้านบาทถ้วน"},
		{"mixed millions", 1234567.89, "หนึ่งล้านสองแสนสามหมื่นสี่พันห้าร้อยหกสิบเจ็ดบาทแปดสิบเก้าสตางค์"},
		{"nines", 999999999, "เก้าร้อยเก้าสิบเก้าล้านเก้าแสนเก้าหมื่นเก้าพันเก้าร้อยเก้าสิบเก้าบาทถ้วน"},
		{"negative", -1, "ลบหนึ่งบาทถ้วน"},
		{"negative with satang", -21.50, "ลบยี่สิบเอ็ดบาทห้าสิบสตางค์"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.amount); got != tt.want {
				t.Errorf("Text(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestTextRounding(t *testing.T) {
	// Half-away-from-zero to the satang: 1.005 reads as 1.01.
	if got := Text(1.005); got != "หนึ่งบาทหนึ่งสตางค์" {
		t.Errorf("Text(1.005) = %q", got)
	}
	if got := Text(1.004); got != "หนึ่งบาทถ้วน" {
		t.Errorf("Text(1.004) = %q", got)
	}
}

func TestTextNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := Text(v); got != Invalid {
			t.Errorf("Text(%v) = %q, want Invalid sentinel", v, got)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1,234.50", "หนึ่งพันสองร้อยสามสิบสี่บาทห้าสิบสตางค์"},
		{" 21 ", "ยี่สิบเอ็ดบาทถ้วน"},
		{"0", ZeroBaht},
		{"abc", Invalid},
		{"12a", Invalid},
		{"", Invalid},
		{"1.2.3", Invalid},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Parse(tt.in); got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// Every valid nonzero amount ends in either ถ้วน (whole baht) or สตางค์,
// never both.
func TestTextSuffix(t *testing.T) {
	amounts := []float64{0.01, 0.99, 1, 2.5, 33.33, 1050, 99999.95, 7000000, 123456789.01}
	for _, amt := range amounts {
		got := Text(amt)
		whole := strings.HasSuffix(got, "ถ้วน")
		satang := strings.HasSuffix(got, "สตางค์")
		if whole == satang {
			t.Errorf("Text(%v) = %q: want exactly one of ถ้วน/สตางค์ suffixes", amt, got)
		}
	}
}

func TestWordsMatchesText(t *testing.T) {
	for _, amt := range []float64{0, 1, 11, 121.5, 1000000.25} {
		if w, x := Words(decimal.NewFromFloat(amt)), Text(amt); w != x {
			t.Errorf("Words/Text mismatch for %v: %q vs %q", amt, w, x)
		}
	}
}
