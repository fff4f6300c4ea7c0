package reconcile

import (
	"testing"
	"time"
)

func TestOverShort(t *testing.T) {
	tests := []struct {
		name                                            string
		cash, card, transfers, loyalty, veresiye, otoms float64
		want                                            float64
	}{
		{"kasa fazlası", 1000, 500, 0, 0, 0, 1450, 50},
		{"tam denk", 800, 200, 100, 50, 50, 1200, 0},
		{"kasa açığı", 500, 300, 0, 0, 0, 900, -100},
		{"tüm kanallar sıfır", 0, 0, 0, 0, 0, 0, 0},
		{"sadece veresiye", 0, 0, 0, 0, 250, 250, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OverShort(tt.cash, tt.card, tt.transfers, tt.loyalty, tt.veresiye, tt.otoms)
			if got != tt.want {
				t.Fatalf("OverShort = %v, beklenen %v", got, tt.want)
			}
		})
	}
}

func TestEffectiveDate(t *testing.T) {
	loc := time.Local
	tests := []struct {
		name  string
		start time.Time
		want  time.Time
	}{
		{
			"gündüz vardiyası aynı güne sayılır",
			time.Date(2025, 3, 10, 8, 0, 0, 0, loc),
			time.Date(2025, 3, 10, 0, 0, 0, 0, loc),
		},
		{
			"22:54 hala aynı gün",
			time.Date(2025, 3, 10, 22, 54, 0, 0, loc),
			time.Date(2025, 3, 10, 0, 0, 0, 0, loc),
		},
		{
			"tam 22:55 ertesi güne sayılır",
			time.Date(2025, 3, 10, 22, 55, 0, 0, loc),
			time.Date(2025, 3, 11, 0, 0, 0, 0, loc),
		},
		{
			"23:30 ertesi güne sayılır",
			time.Date(2025, 3, 10, 23, 30, 0, 0, loc),
			time.Date(2025, 3, 11, 0, 0, 0, 0, loc),
		},
		{
			"ay sonunda gün devri",
			time.Date(2025, 1, 31, 23, 0, 0, 0, loc),
			time.Date(2025, 2, 1, 0, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveDate(tt.start)
			if !got.Equal(tt.want) {
				t.Fatalf("EffectiveDate(%v) = %v, beklenen %v", tt.start, got, tt.want)
			}
		})
	}
}

func TestValidateShiftInput(t *testing.T) {
	customerID := uint(7)

	tests := []struct {
		name    string
		in      ShiftInput
		wantErr error
	}{
		{"geçerli, veresiyesiz", ShiftInput{CashSales: 100, OtomasyonSatis: 100}, nil},
		{"veresiye + müşteri tamam", ShiftInput{Veresiye: 50, CustomerID: &customerID}, nil},
		{"veresiye var müşteri yok", ShiftInput{Veresiye: 50}, ErrVeresiyeNoCustomer},
		{"negatif nakit", ShiftInput{CashSales: -1}, ErrNegativeAmount},
		{"negatif otomasyon", ShiftInput{OtomasyonSatis: -10}, ErrNegativeAmount},
		{"sıfır veresiye müşterisiz sorun değil", ShiftInput{CashSales: 10, OtomasyonSatis: 10}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateShiftInput(tt.in)
			if err != tt.wantErr {
				t.Fatalf("ValidateShiftInput = %v, beklenen %v", err, tt.wantErr)
			}
		})
	}
}

func TestDayRangeEnd(t *testing.T) {
	to := time.Date(2025, 3, 11, 0, 0, 0, 0, time.Local)
	end := DayRangeEnd(to)

	// günün son anı aralıkta kalır
	sonAn := time.Date(2025, 3, 11, 23, 59, 59, 0, time.Local)
	if !sonAn.Before(end) {
		t.Errorf("%v aralık içinde olmalıydı", sonAn)
	}

	// ertesi gün 00:00 damgalı kayıt aralığa girmez
	ertesiGece := time.Date(2025, 3, 12, 0, 0, 0, 0, time.Local)
	if ertesiGece.Before(end) {
		t.Errorf("%v aralık dışında olmalıydı", ertesiGece)
	}

	// ay sonundan taşma
	aySonu := time.Date(2025, 1, 31, 0, 0, 0, 0, time.Local)
	if got := DayRangeEnd(aySonu); !got.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.Local)) {
		t.Errorf("DayRangeEnd(%v) = %v, beklenen 2025-02-01", aySonu, got)
	}
}
