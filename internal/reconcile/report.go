package reconcile

import (
	"sort"
	"time"

	"istasyon-backend/internal/models"
)

// Filter: rapor aralığı ve opsiyonel filtreler. From/To gün başlangıçlarıdır
// (00:00) ve iki uç da dahildir; karşılaştırma vardiyanın EffectiveDate'i
// üzerinden yapılır.
type Filter struct {
	From        time.Time
	To          time.Time
	ShiftType   models.ShiftType // boş = hepsi
	PersonnelID *uint            // nil = hepsi
}

func (f Filter) matchShift(s models.Shift) bool {
	d := EffectiveDate(s.StartTime)
	if d.Before(f.From) || d.After(f.To) {
		return false
	}
	if f.ShiftType != "" && s.Type != f.ShiftType {
		return false
	}
	if f.PersonnelID != nil && s.PersonnelID != *f.PersonnelID {
		return false
	}
	return true
}

func (f Filter) matchSale(fs models.FuelSale) bool {
	// Satışlar da vardiyayla aynı gece kuralına tabidir: 22:55 sonrası
	// satış ertesi günün raporuna sayılır.
	d := EffectiveDate(fs.SaleTime)
	if d.Before(f.From) || d.After(f.To) {
		return false
	}
	if f.ShiftType != "" && fs.ShiftType != f.ShiftType {
		return false
	}
	if f.PersonnelID != nil && fs.PersonnelID != *f.PersonnelID {
		return false
	}
	return true
}

// ChannelTotals: ödeme kanalı bazında toplamlar.
type ChannelTotals struct {
	CashSales      float64 `json:"cash_sales"`
	CardSales      float64 `json:"card_sales"`
	BankTransfers  float64 `json:"bank_transfers"`
	LoyaltyCard    float64 `json:"loyalty_card"`
	Veresiye       float64 `json:"veresiye"`
	OtomasyonSatis float64 `json:"otomasyon_satis"`
	OverShort      float64 `json:"over_short"`
}

func (t ChannelTotals) Total() float64 {
	return t.CashSales + t.CardSales + t.BankTransfers + t.LoyaltyCard + t.Veresiye
}

// FuelTotal: yakıt türü bazında tutar ve litre toplamı.
type FuelTotal struct {
	Amount float64 `json:"amount"`
	Liters float64 `json:"liters"`
}

// PersonnelTotal: personel bazında toplamlar ve ortalama açık/fazla.
type PersonnelTotal struct {
	PersonnelID  uint          `json:"personnel_id"`
	ShiftCount   int           `json:"shift_count"`
	Totals       ChannelTotals `json:"totals"`
	AvgOverShort float64       `json:"avg_over_short"`
}

// BankCardTotal: banka bazında brüt/komisyon/net kart satışı.
// Oran kullanıcı tercihi olarak saklanır (BankCommissionRate).
type BankCardTotal struct {
	BankName   string  `json:"bank_name"`
	Rate       float64 `json:"rate"` // yüzde
	Gross      float64 `json:"gross"`
	Commission float64 `json:"commission"`
	Net        float64 `json:"net"`
}

// Report: filtrelenmiş vardiya ve satış kayıtlarının katlanmış hali.
// Toplama sırası sonucu etkilemez (kayan nokta yuvarlaması hariç).
type Report struct {
	Channels   ChannelTotals                 `json:"channels"`
	FuelTotals map[models.FuelType]FuelTotal `json:"fuel_totals"`
	Personnel  []PersonnelTotal              `json:"personnel"`
	Banks      []BankCardTotal               `json:"banks"`
	ShiftCount int                           `json:"shift_count"`
	SaleCount  int                           `json:"sale_count"`
}

// CommissionSplit: brüt kart satışından komisyonu düş.
func CommissionSplit(gross, ratePercent float64) (commission, net float64) {
	commission = gross * ratePercent / 100
	return commission, gross - commission
}

// Aggregate: vardiya ve yakıt satışlarını filtreleyip tek raporda katlar.
// rates: banka adı -> komisyon yüzdesi; haritada olmayan banka için oran 0.
func Aggregate(shifts []models.Shift, sales []models.FuelSale, f Filter, rates map[string]float64) Report {
	rep := Report{
		FuelTotals: make(map[models.FuelType]FuelTotal),
	}

	perPersonnel := make(map[uint]*PersonnelTotal)
	perBank := make(map[string]float64) // banka -> brüt kart satışı

	for _, s := range shifts {
		if !f.matchShift(s) {
			continue
		}
		rep.ShiftCount++

		overShort := OverShort(s.CashSales, s.CardSales, s.BankTransfers, s.LoyaltyCard, s.Veresiye, s.OtomasyonSatis)

		rep.Channels.CashSales += s.CashSales
		rep.Channels.CardSales += s.CardSales
		rep.Channels.BankTransfers += s.BankTransfers
		rep.Channels.LoyaltyCard += s.LoyaltyCard
		rep.Channels.Veresiye += s.Veresiye
		rep.Channels.OtomasyonSatis += s.OtomasyonSatis
		rep.Channels.OverShort += overShort

		pt, ok := perPersonnel[s.PersonnelID]
		if !ok {
			pt = &PersonnelTotal{PersonnelID: s.PersonnelID}
			perPersonnel[s.PersonnelID] = pt
		}
		pt.ShiftCount++
		pt.Totals.CashSales += s.CashSales
		pt.Totals.CardSales += s.CardSales
		pt.Totals.BankTransfers += s.BankTransfers
		pt.Totals.LoyaltyCard += s.LoyaltyCard
		pt.Totals.Veresiye += s.Veresiye
		pt.Totals.OtomasyonSatis += s.OtomasyonSatis
		pt.Totals.OverShort += overShort

		if s.CardSales > 0 {
			perBank[s.BankName] += s.CardSales
		}
	}

	for _, fs := range sales {
		if !f.matchSale(fs) {
			continue
		}
		rep.SaleCount++
		ft := rep.FuelTotals[fs.FuelType]
		ft.Amount += fs.TotalAmount
		ft.Liters += fs.Liters
		rep.FuelTotals[fs.FuelType] = ft
	}

	// Personel listesi deterministik olsun diye id'ye göre sıralı
	rep.Personnel = make([]PersonnelTotal, 0, len(perPersonnel))
	for _, pt := range perPersonnel {
		if pt.ShiftCount > 0 {
			pt.AvgOverShort = pt.Totals.OverShort / float64(pt.ShiftCount)
		}
		rep.Personnel = append(rep.Personnel, *pt)
	}
	sort.Slice(rep.Personnel, func(i, j int) bool {
		return rep.Personnel[i].PersonnelID < rep.Personnel[j].PersonnelID
	})

	rep.Banks = make([]BankCardTotal, 0, len(perBank))
	for bank, gross := range perBank {
		rate := rates[bank]
		commission, net := CommissionSplit(gross, rate)
		rep.Banks = append(rep.Banks, BankCardTotal{
			BankName:   bank,
			Rate:       rate,
			Gross:      gross,
			Commission: commission,
			Net:        net,
		})
	}
	sort.Slice(rep.Banks, func(i, j int) bool {
		return rep.Banks[i].BankName < rep.Banks[j].BankName
	})

	return rep
}
