package hijri

import (
	"fmt"
	"time"

	gohijri "github.com/hablullah/go-hijri"
)

// UmmAlQura converts via the Umm al-Qura calendar tables, the reference
// used by most published Ramadan dates.
type UmmAlQura struct{}

var _ Converter = UmmAlQura{}

func (UmmAlQura) Today(now time.Time) (Date, error) {
	q, err := gohijri.CreateUmmAlQuraDate(now)
	if err != nil {
		return Date{}, fmt.Errorf("hijri conversion for %s: %w", now.Format("2006-01-02"), err)
	}
	return Date{Year: int(q.Year), Month: int(q.Month), Day: int(q.Day)}, nil
}

func (UmmAlQura) ToCivil(d Date) (time.Time, error) {
	q := gohijri.UmmAlQuraDate{Year: int64(d.Year), Month: int64(d.Month), Day: int64(d.Day)}
	return q.ToGregorian(), nil
}

func (u UmmAlQura) DaysInMonth(year, month int) (int, error) {
	first, err := u.ToCivil(Date{Year: year, Month: month, Day: 1})
	if err != nil {
		return 0, err
	}
	nextYear, nextMonth := year, month+1
	if nextMonth > 12 {
		nextYear, nextMonth = year+1, 1
	}
	next, err := u.ToCivil(Date{Year: nextYear, Month: nextMonth, Day: 1})
	if err != nil {
		return 0, err
	}
	days := int(next.Sub(first) / (24 * time.Hour))
	if days != 29 && days != 30 {
		return 0, fmt.Errorf("implausible month length %d for %d/%d", days, year, month)
	}
	return days, nil
}
