package sale

import "time"

// Summary is the derived aggregate over a calendar window. It holds only
// the matching sale ids (in list order) and the summed totals, never copies
// of the sales themselves.
type Summary struct {
	IDs   []string `json:"ids"`
	Total int64    `json:"total"`
	Cash  int64    `json:"cash"`
	Pix   int64    `json:"pix"`
}

// summarize folds the sales whose date falls inside [start, end) into a
// Summary. Combined sales contribute their cash and pix parts separately;
// single-method sales contribute the full total to the matching side.
func summarize(sales []Sale, start, end time.Time) Summary {
	var sum Summary

	for _, s := range sales {
		if s.Date.Before(start) || !s.Date.Before(end) {
			continue
		}

		sum.IDs = append(sum.IDs, s.ID)
		sum.Total += s.Price.Total

		switch s.Method {
		case PaymentCash:
			sum.Cash += s.Price.Total
		case PaymentPix:
			sum.Pix += s.Price.Total
		case PaymentCombined:
			sum.Cash += s.Price.Cash
			sum.Pix += s.Price.Pix
		}
	}

	return sum
}

// dayWindow returns the bounds of the calendar day containing now, in its
// location.
func dayWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	return start, start.AddDate(0, 0, 1)
}

// monthWindow returns the bounds of the calendar month containing now.
func monthWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	return start, start.AddDate(0, 1, 0)
}
