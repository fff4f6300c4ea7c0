package einvoice

import (
	"encoding/xml"

	"github.com/shopspring/decimal"
)

// UBL benzeri e-fatura dokümanı. Entegratör şemanın tamamını istemez,
// zorunlu alanlar yeterlidir.

type InvoiceDocument struct {
	XMLName       xml.Name     `xml:"Invoice"`
	ETTN          string       `xml:"UUID"`
	InvoiceNo     string       `xml:"ID"`
	IssueDate     string       `xml:"IssueDate"` // YYYY-MM-DD
	Currency      string       `xml:"DocumentCurrencyCode"`
	Supplier      PartyElement `xml:"AccountingSupplierParty>Party"`
	Customer      PartyElement `xml:"AccountingCustomerParty>Party"`
	Lines         []LineItem   `xml:"InvoiceLine"`
	TaxTotal      MoneyElement `xml:"TaxTotal>TaxAmount"`
	PayableAmount MoneyElement `xml:"LegalMonetaryTotal>PayableAmount"`
	LineExtension MoneyElement `xml:"LegalMonetaryTotal>LineExtensionAmount"`
}

type PartyElement struct {
	Name      string `xml:"PartyName>Name"`
	TaxNumber string `xml:"PartyIdentification>ID,omitempty"`
	TaxOffice string `xml:"PartyTaxScheme>TaxScheme>Name,omitempty"`
}

type MoneyElement struct {
	Amount   string `xml:",chardata"`
	Currency string `xml:"currencyID,attr"`
}

type LineItem struct {
	ID          int          `xml:"ID"`
	Description string       `xml:"Item>Name"`
	Quantity    string       `xml:"InvoicedQuantity"`
	UnitPrice   MoneyElement `xml:"Price>PriceAmount"`
	NetAmount   MoneyElement `xml:"LineExtensionAmount"`
	VATRate     string       `xml:"TaxTotal>TaxSubtotal>Percent"`
	VATAmount   MoneyElement `xml:"TaxTotal>TaxAmount"`
}

// InvoiceLine: handler'ın doldurduğu satır girdisi. Parasal alanlar
// decimal ile hesaplanır, float yuvarlama hatası faturaya yansımaz.
type InvoiceLine struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	VATRate     decimal.Decimal // yüzde, örn 20
}

// Net: miktar x birim fiyat, 2 haneye yuvarlanır.
func (l InvoiceLine) Net() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice).Round(2)
}

// VAT: net x oran / 100, 2 haneye yuvarlanır.
func (l InvoiceLine) VAT() decimal.Decimal {
	return l.Net().Mul(l.VATRate).Div(decimal.NewFromInt(100)).Round(2)
}

// Totals: satırların net, KDV ve genel toplamı.
func Totals(lines []InvoiceLine) (net, vat, total decimal.Decimal) {
	for _, l := range lines {
		net = net.Add(l.Net())
		vat = vat.Add(l.VAT())
	}
	return net, vat, net.Add(vat)
}

func money(d decimal.Decimal, currency string) MoneyElement {
	return MoneyElement{Amount: d.StringFixed(2), Currency: currency}
}

type DocumentParams struct {
	ETTN         string
	InvoiceNo    string
	IssueDate    string
	Currency     string
	SupplierName string
	TaxNumber    string
	TaxOffice    string
	CustomerName string
	CustomerTax  string
	Lines        []InvoiceLine
}

// BuildDocument: satırlardan XML doküman yapısını kurar.
func BuildDocument(p DocumentParams) InvoiceDocument {
	net, vat, total := Totals(p.Lines)

	doc := InvoiceDocument{
		ETTN:      p.ETTN,
		InvoiceNo: p.InvoiceNo,
		IssueDate: p.IssueDate,
		Currency:  p.Currency,
		Supplier: PartyElement{
			Name:      p.SupplierName,
			TaxNumber: p.TaxNumber,
			TaxOffice: p.TaxOffice,
		},
		Customer: PartyElement{
			Name:      p.CustomerName,
			TaxNumber: p.CustomerTax,
		},
		TaxTotal:      money(vat, p.Currency),
		PayableAmount: money(total, p.Currency),
		LineExtension: money(net, p.Currency),
	}

	for i, l := range p.Lines {
		doc.Lines = append(doc.Lines, LineItem{
			ID:          i + 1,
			Description: l.Description,
			Quantity:    l.Quantity.String(),
			UnitPrice:   money(l.UnitPrice, p.Currency),
			NetAmount:   money(l.Net(), p.Currency),
			VATRate:     l.VATRate.String(),
			VATAmount:   money(l.VAT(), p.Currency),
		})
	}

	return doc
}

// EncodeDocument: dokümanı girintili XML metnine çevirir.
func EncodeDocument(doc InvoiceDocument) (string, error) {
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return xml.Header + string(out), nil
}
