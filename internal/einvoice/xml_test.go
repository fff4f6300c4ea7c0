package einvoice

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestInvoiceLineHesap(t *testing.T) {
	tests := []struct {
		name    string
		line    InvoiceLine
		wantNet string
		wantVAT string
	}{
		{
			name:    "basit satır",
			line:    InvoiceLine{Quantity: dec("250"), UnitPrice: dec("40"), VATRate: dec("20")},
			wantNet: "10000.00",
			wantVAT: "2000.00",
		},
		{
			name:    "küsuratlı birim fiyat",
			line:    InvoiceLine{Quantity: dec("13.5"), UnitPrice: dec("42.75"), VATRate: dec("20")},
			wantNet: "577.13",
			wantVAT: "115.43",
		},
		{
			name:    "sıfır KDV",
			line:    InvoiceLine{Quantity: dec("10"), UnitPrice: dec("5"), VATRate: dec("0")},
			wantNet: "50.00",
			wantVAT: "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.line.Net().StringFixed(2); got != tt.wantNet {
				t.Errorf("Net = %s, beklenen %s", got, tt.wantNet)
			}
			if got := tt.line.VAT().StringFixed(2); got != tt.wantVAT {
				t.Errorf("VAT = %s, beklenen %s", got, tt.wantVAT)
			}
		})
	}
}

func TestTotals(t *testing.T) {
	lines := []InvoiceLine{
		{Quantity: dec("100"), UnitPrice: dec("40"), VATRate: dec("20")},
		{Quantity: dec("50"), UnitPrice: dec("38"), VATRate: dec("20")},
	}

	net, vat, total := Totals(lines)
	if net.StringFixed(2) != "5900.00" {
		t.Errorf("net = %s, beklenen 5900.00", net.StringFixed(2))
	}
	if vat.StringFixed(2) != "1180.00" {
		t.Errorf("vat = %s, beklenen 1180.00", vat.StringFixed(2))
	}
	if total.StringFixed(2) != "7080.00" {
		t.Errorf("total = %s, beklenen 7080.00", total.StringFixed(2))
	}
}

func TestBuildDocument(t *testing.T) {
	doc := BuildDocument(DocumentParams{
		ETTN:         "11111111-2222-3333-4444-555555555555",
		InvoiceNo:    "IST2025000001",
		IssueDate:    "2025-12-09",
		Currency:     "TRY",
		SupplierName: "Örnek Petrol",
		TaxNumber:    "1234567890",
		TaxOffice:    "Kadıköy",
		CustomerName: "Taşıma A.Ş.",
		CustomerTax:  "9876543210",
		Lines: []InvoiceLine{
			{Description: "MOTORİN", Quantity: dec("250"), UnitPrice: dec("40"), VATRate: dec("20")},
		},
	})

	if doc.PayableAmount.Amount != "12000.00" {
		t.Errorf("PayableAmount = %s, beklenen 12000.00", doc.PayableAmount.Amount)
	}
	if doc.TaxTotal.Amount != "2000.00" {
		t.Errorf("TaxTotal = %s, beklenen 2000.00", doc.TaxTotal.Amount)
	}
	if len(doc.Lines) != 1 || doc.Lines[0].ID != 1 {
		t.Fatalf("satır numaralandırması hatalı: %+v", doc.Lines)
	}
}

func TestEncodeDocumentGidisDonus(t *testing.T) {
	in := BuildDocument(DocumentParams{
		ETTN:         "11111111-2222-3333-4444-555555555555",
		InvoiceNo:    "IST2025000002",
		IssueDate:    "2025-12-10",
		Currency:     "TRY",
		SupplierName: "Örnek Petrol",
		TaxNumber:    "1234567890",
		TaxOffice:    "Kadıköy",
		CustomerName: "Nakliyat Ltd.",
		Lines: []InvoiceLine{
			{Description: "BENZİN", Quantity: dec("100"), UnitPrice: dec("42.5"), VATRate: dec("20")},
			{Description: "LPG", Quantity: dec("60"), UnitPrice: dec("25"), VATRate: dec("20")},
		},
	})

	encoded, err := EncodeDocument(in)
	if err != nil {
		t.Fatalf("EncodeDocument hata verdi: %v", err)
	}
	if !strings.HasPrefix(encoded, xml.Header) {
		t.Error("XML başlığı eksik")
	}

	var out InvoiceDocument
	if err := xml.Unmarshal([]byte(encoded), &out); err != nil {
		t.Fatalf("Unmarshal hata verdi: %v", err)
	}

	if out.ETTN != in.ETTN {
		t.Errorf("ETTN = %s, beklenen %s", out.ETTN, in.ETTN)
	}
	if out.Supplier.Name != in.Supplier.Name {
		t.Errorf("Supplier = %s, beklenen %s", out.Supplier.Name, in.Supplier.Name)
	}
	if len(out.Lines) != 2 {
		t.Fatalf("satır sayısı = %d, beklenen 2", len(out.Lines))
	}
	if out.Lines[0].NetAmount.Amount != "4250.00" {
		t.Errorf("ilk satır net = %s, beklenen 4250.00", out.Lines[0].NetAmount.Amount)
	}
	if out.PayableAmount.Amount != in.PayableAmount.Amount {
		t.Errorf("PayableAmount = %s, beklenen %s", out.PayableAmount.Amount, in.PayableAmount.Amount)
	}
}
