package employee

// Employee is a daily worker who can receive payouts. DefaultRates holds
// the two quick-pick payout amounts, in centavos.
type Employee struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	AvatarURL    string   `json:"avatarUrl,omitempty"`
	DefaultRates [2]int64 `json:"defaultRates"`
}
