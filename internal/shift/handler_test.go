package shift

import (
	"testing"
	"time"
)

func gun(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestInEffectiveRangeTekSinir(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		from    time.Time
		to      time.Time
		hasFrom bool
		hasTo   bool
		want    bool
	}{
		{
			name:    "sadece from, önceki günün gündüz vardiyası dışarıda",
			start:   time.Date(2025, 3, 10, 8, 0, 0, 0, time.Local),
			from:    gun(2025, 3, 11),
			hasFrom: true,
			want:    false,
		},
		{
			name:    "sadece from, önceki günün 23:00 vardiyası ertesi güne sayılır",
			start:   time.Date(2025, 3, 10, 23, 0, 0, 0, time.Local),
			from:    gun(2025, 3, 11),
			hasFrom: true,
			want:    true,
		},
		{
			name:  "sadece to, son günün 23:00 vardiyası ertesi güne kayar, dışarıda",
			start: time.Date(2025, 3, 11, 23, 0, 0, 0, time.Local),
			to:    gun(2025, 3, 11),
			hasTo: true,
			want:  false,
		},
		{
			name:  "sadece to, son günün gündüz vardiyası içeride",
			start: time.Date(2025, 3, 11, 8, 0, 0, 0, time.Local),
			to:    gun(2025, 3, 11),
			hasTo: true,
			want:  true,
		},
		{
			name:  "sınır yok, her vardiya içeride",
			start: time.Date(2025, 3, 10, 8, 0, 0, 0, time.Local),
			want:  true,
		},
		{
			name:    "çift sınır, aralık içi",
			start:   time.Date(2025, 3, 10, 22, 55, 0, 0, time.Local),
			from:    gun(2025, 3, 11),
			to:      gun(2025, 3, 11),
			hasFrom: true,
			hasTo:   true,
			want:    true,
		},
		{
			name:    "çift sınır, aralık dışı",
			start:   time.Date(2025, 3, 12, 8, 0, 0, 0, time.Local),
			from:    gun(2025, 3, 10),
			to:      gun(2025, 3, 11),
			hasFrom: true,
			hasTo:   true,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inEffectiveRange(tt.start, tt.from, tt.to, tt.hasFrom, tt.hasTo)
			if got != tt.want {
				t.Errorf("inEffectiveRange(%v) = %v, beklenen %v", tt.start, got, tt.want)
			}
		})
	}
}
