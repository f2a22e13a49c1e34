package payment

import "time"

// ReceiverTypeEmployee is the only receiver kind currently registered.
const ReceiverTypeEmployee = "employee"

// Receiver references who got paid, by id. The employee is resolved at
// read time; a deleted employee resolves to absent and the record stands.
type Receiver struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// Payment is one daily-worker payout, amount in centavos.
type Payment struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Timestamp time.Time `json:"timestamp"`
	Amount    int64     `json:"amount"`
	Receiver  Receiver  `json:"receiver"`
}

// Summary is the derived aggregate over a calendar window: matching ids in
// list order plus the summed amount.
type Summary struct {
	IDs   []string `json:"ids"`
	Total int64    `json:"total"`
}

func summarize(payments []Payment, start, end time.Time) Summary {
	var sum Summary

	for _, p := range payments {
		if p.Date.Before(start) || !p.Date.Before(end) {
			continue
		}

		sum.IDs = append(sum.IDs, p.ID)
		sum.Total += p.Amount
	}

	return sum
}

func dayWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	return start, start.AddDate(0, 0, 1)
}

func monthWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	return start, start.AddDate(0, 1, 0)
}
