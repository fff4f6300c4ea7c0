package reconcile

// FuelProfit: bir yakıt türü için kâr hesabı sonucu.
type FuelProfit struct {
	AverageSalePrice float64 `json:"average_sale_price"` // tutar / litre
	ProfitPerLiter   float64 `json:"profit_per_liter"`   // ortalama satış - alış
	TotalProfit      float64 `json:"total_profit"`       // litre başı kâr * litre
}

// Profit: toplam satış tutarı, litre ve alış fiyatından kâr hesapla.
// Litre 0 ise bölme hatası yerine tüm alanlar 0 döner.
func Profit(amount, liters, purchasePrice float64) FuelProfit {
	if liters == 0 {
		return FuelProfit{}
	}
	avg := amount / liters
	perLiter := avg - purchasePrice
	return FuelProfit{
		AverageSalePrice: avg,
		ProfitPerLiter:   perLiter,
		TotalProfit:      perLiter * liters,
	}
}
