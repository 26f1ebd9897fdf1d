package billing

import (
	"time"
)

// Datas do motor têm granularidade de dia. Tudo é normalizado para meio-dia
// UTC: a hora nunca importa e o meio-dia evita o clássico deslocamento de um
// dia ao converter entre fusos.
func Noon(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Period é a janela de exibição de um mês-calendário.
type Period struct {
	Year  int
	Month time.Month
}

func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

func (p Period) Contains(t time.Time) bool {
	return t.Year() == p.Year && t.Month() == p.Month
}

func (p Period) Next() Period {
	if p.Month == time.December {
		return Period{Year: p.Year + 1, Month: time.January}
	}
	return Period{Year: p.Year, Month: p.Month + 1}
}

func (p Period) Previous() Period {
	if p.Month == time.January {
		return Period{Year: p.Year - 1, Month: time.December}
	}
	return Period{Year: p.Year, Month: p.Month - 1}
}

func lastDayOfMonth(year int, month time.Month) int {
	// Dia zero do mês seguinte.
	return time.Date(year, month+1, 0, 12, 0, 0, 0, time.UTC).Day()
}

// clampDay segura o dia dentro do mês em vez de deixar a data transbordar
// para o mês seguinte (vencimento dia 31 em fevereiro cai no último dia).
func clampDay(year int, month time.Month, day int) int {
	if last := lastDayOfMonth(year, month); day > last {
		return last
	}
	return day
}
