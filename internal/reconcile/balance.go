package reconcile

import (
	"time"

	"istasyon-backend/internal/models"
)

// CustomerBalance: Σborç - Σödeme. Pozitif = müşteri istasyona borçlu,
// negatif = istasyon müşteriye borçlu.
func CustomerBalance(txs []models.CustomerTransaction) float64 {
	var balance float64
	for _, tx := range txs {
		switch tx.Type {
		case models.CustomerTxDebt:
			balance += tx.Amount
		case models.CustomerTxPayment:
			balance -= tx.Amount
		}
	}
	return balance
}

// CustomerBalanceBetween: tarih aralığına göre filtrelenmiş bakiye.
// İki uç da dahildir.
func CustomerBalanceBetween(txs []models.CustomerTransaction, from, to time.Time) float64 {
	filtered := make([]models.CustomerTransaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Date.Before(from) || tx.Date.After(to) {
			continue
		}
		filtered = append(filtered, tx)
	}
	return CustomerBalance(filtered)
}

// AccountBalance: Σgelir - Σgider. İşaret kuralı müşteri bakiyesiyle
// aynıdır: pozitif = istasyona girecek para.
func AccountBalance(invs []models.CompanyInvoice) float64 {
	var balance float64
	for _, inv := range invs {
		switch inv.Type {
		case models.InvoiceTypeIncome:
			balance += inv.Amount
		case models.InvoiceTypeExpense:
			balance -= inv.Amount
		}
	}
	return balance
}

// UnpaidTotals: ödenmemiş gelir ve gider fatura toplamları.
func UnpaidTotals(invs []models.CompanyInvoice) (incomeUnpaid, expenseUnpaid float64) {
	for _, inv := range invs {
		if inv.PaymentStatus != models.PaymentStatusUnpaid {
			continue
		}
		switch inv.Type {
		case models.InvoiceTypeIncome:
			incomeUnpaid += inv.Amount
		case models.InvoiceTypeExpense:
			expenseUnpaid += inv.Amount
		}
	}
	return incomeUnpaid, expenseUnpaid
}
