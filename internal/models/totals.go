package models

import "time"

const DateLayout = "2006-01-02"

// Totals is the calories (kcal), protein, carbs and fat (g) eaten.
type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func (t Totals) Add(o Totals) Totals {
	return Totals{
		Calories: t.Calories + o.Calories,
		Protein:  t.Protein + o.Protein,
		Carbs:    t.Carbs + o.Carbs,
		Fat:      t.Fat + o.Fat,
	}
}

func (t Totals) IsZero() bool {
	return t == Totals{}
}

// SumTotals accumulates quantity_g/100 * density for every consumption, in
// order. No rounding is applied.
func SumTotals(items []*ConsumptionDetail) Totals {
	var t Totals
	for _, c := range items {
		t = t.Add(c.Totals())
	}
	return t
}

type DayTotals struct {
	Date   time.Time `json:"date"`
	Totals Totals    `json:"totals"`
}

// Day truncates t to its calendar date, expressed as midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Today() time.Time {
	return Day(time.Now())
}

func ParseDay(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func FormatDay(t time.Time) string {
	return t.Format(DateLayout)
}
