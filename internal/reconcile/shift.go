// Package reconcile: vardiya mutabakatı ve satış toplama hesapları.
// Saf fonksiyonlardır, veritabanına veya HTTP katmanına bağımlılık yoktur.
package reconcile

import (
	"errors"
	"time"
)

// Gece 22:55 ve sonrası başlayan vardiya ertesi günün raporuna sayılır
// (istasyonun "gece yarısı vardiyası yarına aittir" kuralı).
const nightCutoffMinutes = 22*60 + 55

// OverShort: beş ödeme kanalı toplamı ile otomasyonun bildirdiği satış
// arasındaki fark. Pozitif = kasa fazlası, negatif = açık.
func OverShort(cash, card, transfers, loyalty, veresiye, otomasyon float64) float64 {
	return (cash + card + transfers + loyalty + veresiye) - otomasyon
}

// EffectiveDate: vardiyanın rapor günü (00:00'a normalize edilmiş).
// Başlangıç saati 22:55 ve sonrasıysa ertesi gün döner; saklanan
// start_time değişmez, sadece hangi günün raporuna sayılacağı değişir.
func EffectiveDate(start time.Time) time.Time {
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	if start.Hour()*60+start.Minute() >= nightCutoffMinutes {
		return day.AddDate(0, 0, 1)
	}
	return day
}

// DayRangeEnd: gün bazlı kapsayıcı "to" sınırının dışlayıcı SQL karşılığı.
// Sorgular "tarih < DayRangeEnd(to)" yazar; to+1 günü 00:00 damgalı kayıt
// aralığa girmez.
func DayRangeEnd(to time.Time) time.Time {
	return to.AddDate(0, 0, 1)
}

// ShiftInput: vardiya kaydı doğrulaması için giriş değerleri.
type ShiftInput struct {
	CashSales      float64
	CardSales      float64
	BankTransfers  float64
	LoyaltyCard    float64
	Veresiye       float64
	OtomasyonSatis float64
	CustomerID     *uint
}

var (
	ErrNegativeAmount     = errors.New("tutarlar negatif olamaz")
	ErrVeresiyeNoCustomer = errors.New("veresiye tutarı için müşteri seçilmeli")
)

// ValidateShiftInput: form tarafında kalan iş kuralları burada zorunlu
// domain kuralı olarak uygulanır. Veresiye tutarı girilmişse müşteri
// seçilmemiş olması sessizce geçilmez, hata döner.
func ValidateShiftInput(in ShiftInput) error {
	for _, v := range []float64{in.CashSales, in.CardSales, in.BankTransfers, in.LoyaltyCard, in.Veresiye, in.OtomasyonSatis} {
		if v < 0 {
			return ErrNegativeAmount
		}
	}
	if in.Veresiye > 0 && in.CustomerID == nil {
		return ErrVeresiyeNoCustomer
	}
	return nil
}
