package reconcile

import "testing"

func TestProfit(t *testing.T) {
	tests := []struct {
		name                          string
		amount, liters, purchasePrice float64
		want                          FuelProfit
	}{
		{
			"BENZİN örneği", 10000, 250, 30,
			FuelProfit{AverageSalePrice: 40, ProfitPerLiter: 10, TotalProfit: 2500},
		},
		{
			"zararda satış", 4000, 100, 45,
			FuelProfit{AverageSalePrice: 40, ProfitPerLiter: -5, TotalProfit: -500},
		},
		{
			"litre sıfır ise bölme hatası yok, hepsi sıfır", 1000, 0, 30,
			FuelProfit{},
		},
		{
			"alış fiyatı girilmemiş", 5000, 100, 0,
			FuelProfit{AverageSalePrice: 50, ProfitPerLiter: 50, TotalProfit: 5000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Profit(tt.amount, tt.liters, tt.purchasePrice)
			if got != tt.want {
				t.Fatalf("Profit(%v, %v, %v) = %+v, beklenen %+v",
					tt.amount, tt.liters, tt.purchasePrice, got, tt.want)
			}
		})
	}
}
