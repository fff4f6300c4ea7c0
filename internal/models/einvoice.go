package models

import "time"

type EInvoiceKind string

const (
	EInvoiceKindFatura EInvoiceKind = "efatura" // XML (UBL) ile gönderilir
	EInvoiceKindArsiv  EInvoiceKind = "earsiv"  // JSON ile gönderilir
)

// EInvoice: entegratöre (Uyumsoft) gönderilen e-fatura/e-arşiv kaydı.
// Entegratörden dönen durum olduğu gibi saklanır; retry veya mutabakat yapılmaz.
type EInvoice struct {
	ID         uint `gorm:"primaryKey"`
	StationID  uint `gorm:"index;not null"`
	Station    Station
	Kind       EInvoiceKind `gorm:"size:20;not null"`
	ETTN       string       `gorm:"size:36;uniqueIndex;not null"` // evrensel tekil tanımlayıcı
	InvoiceNo  string       `gorm:"size:50"`
	CustomerID *uint
	Customer   *Customer
	IssueDate  time.Time `gorm:"index;not null"`
	Currency   string    `gorm:"size:3;not null;default:TRY"`

	NetAmount   float64 `gorm:"not null"` // KDV hariç toplam
	VATAmount   float64 `gorm:"not null"`
	TotalAmount float64 `gorm:"not null"` // KDV dahil toplam

	// Gönderilen ham doküman (XML veya JSON) ve entegratör cevabı
	Payload         string `gorm:"type:text"`
	Success         bool
	Status          string `gorm:"size:50"` // entegratörün döndürdüğü durum, olduğu gibi
	ResponseMessage string `gorm:"size:500"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
