package reconcile

import (
	"testing"
	"time"

	"istasyon-backend/internal/models"
)

func tx(t models.CustomerTransactionType, amount float64, d time.Time) models.CustomerTransaction {
	return models.CustomerTransaction{Type: t, Amount: amount, Date: d}
}

func TestCustomerBalance(t *testing.T) {
	d := day(2025, 3, 10)

	tests := []struct {
		name string
		txs  []models.CustomerTransaction
		want float64
	}{
		{"boş set", nil, 0},
		{"sadece borç", []models.CustomerTransaction{tx(models.CustomerTxDebt, 500, d)}, 500},
		{"borç ve ödeme", []models.CustomerTransaction{
			tx(models.CustomerTxDebt, 500, d),
			tx(models.CustomerTxDebt, 300, d),
			tx(models.CustomerTxPayment, 200, d),
		}, 600},
		{"fazla ödeme negatif bakiye", []models.CustomerTransaction{
			tx(models.CustomerTxDebt, 100, d),
			tx(models.CustomerTxPayment, 250, d),
		}, -150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CustomerBalance(tt.txs); got != tt.want {
				t.Fatalf("CustomerBalance = %v, beklenen %v", got, tt.want)
			}
		})
	}
}

// Kayıt ekleyip silince bakiye eski değerine dönmeli.
func TestCustomerBalanceRoundTrip(t *testing.T) {
	d := day(2025, 3, 10)
	txs := []models.CustomerTransaction{
		tx(models.CustomerTxDebt, 500, d),
		tx(models.CustomerTxPayment, 100, d),
	}
	before := CustomerBalance(txs)

	txs = append(txs, tx(models.CustomerTxDebt, 750, d))
	if CustomerBalance(txs) == before {
		t.Fatalf("yeni işlem bakiyeyi değiştirmedi")
	}

	txs = txs[:len(txs)-1]
	if got := CustomerBalance(txs); got != before {
		t.Fatalf("silme sonrası bakiye = %v, beklenen %v", got, before)
	}
}

func TestCustomerBalanceBetween(t *testing.T) {
	txs := []models.CustomerTransaction{
		tx(models.CustomerTxDebt, 100, day(2025, 3, 1)),
		tx(models.CustomerTxDebt, 200, day(2025, 3, 15)),
		tx(models.CustomerTxPayment, 50, day(2025, 3, 20)),
		tx(models.CustomerTxDebt, 999, day(2025, 4, 1)),
	}

	got := CustomerBalanceBetween(txs, day(2025, 3, 1), day(2025, 3, 31))
	if got != 250 {
		t.Fatalf("mart bakiyesi = %v, beklenen 250", got)
	}

	// uçlar dahil
	got = CustomerBalanceBetween(txs, day(2025, 3, 15), day(2025, 3, 20))
	if got != 150 {
		t.Fatalf("15-20 mart bakiyesi = %v, beklenen 150", got)
	}
}

func inv(t models.InvoiceType, amount float64, status models.PaymentStatus) models.CompanyInvoice {
	return models.CompanyInvoice{Type: t, Amount: amount, PaymentStatus: status}
}

func TestAccountBalance(t *testing.T) {
	invs := []models.CompanyInvoice{
		inv(models.InvoiceTypeIncome, 10000, models.PaymentStatusPaid),
		inv(models.InvoiceTypeIncome, 2500, models.PaymentStatusUnpaid),
		inv(models.InvoiceTypeExpense, 4000, models.PaymentStatusPaid),
		inv(models.InvoiceTypeExpense, 1500, models.PaymentStatusUnpaid),
	}

	if got := AccountBalance(invs); got != 7000 {
		t.Fatalf("AccountBalance = %v, beklenen 7000", got)
	}

	incomeUnpaid, expenseUnpaid := UnpaidTotals(invs)
	if incomeUnpaid != 2500 || expenseUnpaid != 1500 {
		t.Fatalf("UnpaidTotals = %v/%v, beklenen 2500/1500", incomeUnpaid, expenseUnpaid)
	}
}
