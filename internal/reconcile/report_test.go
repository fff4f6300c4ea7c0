package reconcile

import (
	"math"
	"testing"
	"time"

	"istasyon-backend/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func sampleShifts() []models.Shift {
	return []models.Shift{
		{
			PersonnelID: 1, Type: models.ShiftTypeDay, BankName: "Ziraat",
			StartTime: time.Date(2025, 3, 10, 8, 0, 0, 0, time.Local),
			CashSales: 1000, CardSales: 5000, OtomasyonSatis: 6000,
		},
		{
			PersonnelID: 2, Type: models.ShiftTypeNight, BankName: "Garanti",
			StartTime: time.Date(2025, 3, 10, 20, 0, 0, 0, time.Local),
			CashSales: 500, CardSales: 300, Veresiye: 200, OtomasyonSatis: 950,
		},
		{
			// 23:00'te başlıyor: 11'inin raporuna sayılmalı
			PersonnelID: 1, Type: models.ShiftTypeNight, BankName: "Ziraat",
			StartTime: time.Date(2025, 3, 10, 23, 0, 0, 0, time.Local),
			CashSales: 400, OtomasyonSatis: 400,
		},
	}
}

func sampleSales() []models.FuelSale {
	return []models.FuelSale{
		{FuelType: models.FuelBenzin, Liters: 250, TotalAmount: 10000, PersonnelID: 1,
			ShiftType: models.ShiftTypeDay, SaleTime: time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)},
		{FuelType: models.FuelMotorin, Liters: 100, TotalAmount: 4200, PersonnelID: 2,
			ShiftType: models.ShiftTypeNight, SaleTime: time.Date(2025, 3, 10, 21, 0, 0, 0, time.Local)},
		{FuelType: models.FuelBenzin, Liters: 40, TotalAmount: 1600, PersonnelID: 1,
			ShiftType: models.ShiftTypeDay, SaleTime: time.Date(2025, 3, 12, 9, 0, 0, 0, time.Local)},
	}
}

func TestAggregateDateRangeUsesEffectiveDate(t *testing.T) {
	f := Filter{From: day(2025, 3, 10), To: day(2025, 3, 10)}
	rep := Aggregate(sampleShifts(), sampleSales(), f, nil)

	// 23:00 vardiyası 11'ine kaydığı için sadece ilk iki vardiya sayılır
	if rep.ShiftCount != 2 {
		t.Fatalf("ShiftCount = %d, beklenen 2", rep.ShiftCount)
	}
	if rep.Channels.CashSales != 1500 {
		t.Fatalf("CashSales = %v, beklenen 1500", rep.Channels.CashSales)
	}
	if rep.Channels.Veresiye != 200 {
		t.Fatalf("Veresiye = %v, beklenen 200", rep.Channels.Veresiye)
	}

	// 12'sindeki satış aralık dışında
	if rep.SaleCount != 2 {
		t.Fatalf("SaleCount = %d, beklenen 2", rep.SaleCount)
	}
	benzin := rep.FuelTotals[models.FuelBenzin]
	if benzin.Amount != 10000 || benzin.Liters != 250 {
		t.Fatalf("BENZİN toplamı = %+v, beklenen {10000 250}", benzin)
	}

	// ertesi gün sorgulanınca gece vardiyası görünür
	f2 := Filter{From: day(2025, 3, 11), To: day(2025, 3, 11)}
	rep2 := Aggregate(sampleShifts(), sampleSales(), f2, nil)
	if rep2.ShiftCount != 1 {
		t.Fatalf("ertesi gün ShiftCount = %d, beklenen 1", rep2.ShiftCount)
	}
}

func TestAggregateShiftTypeAndPersonnelFilters(t *testing.T) {
	pid := uint(1)

	f := Filter{From: day(2025, 3, 1), To: day(2025, 3, 31), ShiftType: models.ShiftTypeNight}
	rep := Aggregate(sampleShifts(), sampleSales(), f, nil)
	if rep.ShiftCount != 2 {
		t.Fatalf("gece vardiyası sayısı = %d, beklenen 2", rep.ShiftCount)
	}

	f = Filter{From: day(2025, 3, 1), To: day(2025, 3, 31), PersonnelID: &pid}
	rep = Aggregate(sampleShifts(), sampleSales(), f, nil)
	if rep.ShiftCount != 2 {
		t.Fatalf("personel 1 vardiya sayısı = %d, beklenen 2", rep.ShiftCount)
	}
	if rep.SaleCount != 2 {
		t.Fatalf("personel 1 satış sayısı = %d, beklenen 2", rep.SaleCount)
	}
}

func TestAggregatePersonnelRollup(t *testing.T) {
	f := Filter{From: day(2025, 3, 1), To: day(2025, 3, 31)}
	rep := Aggregate(sampleShifts(), nil, f, nil)

	if len(rep.Personnel) != 2 {
		t.Fatalf("personel sayısı = %d, beklenen 2", len(rep.Personnel))
	}
	// id'ye göre sıralı döner
	p1 := rep.Personnel[0]
	if p1.PersonnelID != 1 || p1.ShiftCount != 2 {
		t.Fatalf("personel 1 rollup hatalı: %+v", p1)
	}
	// vardiya 1: 6000-6000=0, vardiya 3: 400-400=0 -> ortalama 0
	if p1.AvgOverShort != 0 {
		t.Fatalf("personel 1 ortalama açık/fazla = %v, beklenen 0", p1.AvgOverShort)
	}

	p2 := rep.Personnel[1]
	// 500+300+200-950 = 50
	if p2.Totals.OverShort != 50 || p2.AvgOverShort != 50 {
		t.Fatalf("personel 2 açık/fazla = %v / %v, beklenen 50 / 50", p2.Totals.OverShort, p2.AvgOverShort)
	}
}

func TestAggregateBankCommission(t *testing.T) {
	rates := map[string]float64{"Ziraat": 2.5, "Garanti": 1.8}
	f := Filter{From: day(2025, 3, 10), To: day(2025, 3, 10)}
	rep := Aggregate(sampleShifts(), nil, f, rates)

	if len(rep.Banks) != 2 {
		t.Fatalf("banka sayısı = %d, beklenen 2", len(rep.Banks))
	}
	// alfabetik: Garanti, Ziraat
	ziraat := rep.Banks[1]
	if ziraat.BankName != "Ziraat" {
		t.Fatalf("banka sıralaması hatalı: %+v", rep.Banks)
	}
	if ziraat.Gross != 5000 || ziraat.Commission != 125 || ziraat.Net != 4875 {
		t.Fatalf("Ziraat netleştirme = %+v, beklenen brüt 5000, komisyon 125, net 4875", ziraat)
	}

	garanti := rep.Banks[0]
	wantCommission := 300 * 1.8 / 100
	if math.Abs(garanti.Commission-wantCommission) > 1e-9 {
		t.Fatalf("Garanti komisyonu = %v, beklenen %v", garanti.Commission, wantCommission)
	}
}

func TestAggregateOrderIndependence(t *testing.T) {
	f := Filter{From: day(2025, 3, 1), To: day(2025, 3, 31)}
	shifts := sampleShifts()
	sales := sampleSales()

	rep1 := Aggregate(shifts, sales, f, map[string]float64{"Ziraat": 2.5})

	// ters sırayla aynı sonuç
	rev := make([]models.Shift, len(shifts))
	for i := range shifts {
		rev[len(shifts)-1-i] = shifts[i]
	}
	revSales := make([]models.FuelSale, len(sales))
	for i := range sales {
		revSales[len(sales)-1-i] = sales[i]
	}
	rep2 := Aggregate(rev, revSales, f, map[string]float64{"Ziraat": 2.5})

	if rep1.Channels != rep2.Channels {
		t.Fatalf("kanal toplamları sıraya bağlı çıktı: %+v != %+v", rep1.Channels, rep2.Channels)
	}
	if len(rep1.Personnel) != len(rep2.Personnel) {
		t.Fatalf("personel rollup sıraya bağlı çıktı")
	}
	for i := range rep1.Personnel {
		if rep1.Personnel[i] != rep2.Personnel[i] {
			t.Fatalf("personel rollup farklı: %+v != %+v", rep1.Personnel[i], rep2.Personnel[i])
		}
	}
}

func TestCommissionSplit(t *testing.T) {
	commission, net := CommissionSplit(5000, 2.5)
	if commission != 125 || net != 4875 {
		t.Fatalf("CommissionSplit(5000, 2.5) = %v, %v; beklenen 125, 4875", commission, net)
	}

	commission, net = CommissionSplit(1000, 0)
	if commission != 0 || net != 1000 {
		t.Fatalf("oransız banka için komisyon 0 olmalı, %v/%v döndü", commission, net)
	}
}
