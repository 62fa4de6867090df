package domain

import (
	"encoding/json"
	"math"
	"strconv"
)

// Amount is a rupee amount held in paise. It serializes as a decimal number of
// rupees so stored quotes read like {"taxes": 1440} or {"taxes": 1440.5}.
type Amount int64

func Rupees(r int64) Amount {
	return Amount(r * 100)
}

func (a Amount) Float() float64 {
	return float64(a) / 100
}

func (a Amount) String() string {
	return strconv.FormatFloat(a.Float(), 'f', 2, 64)
}

// percentOf returns bps basis points of a, rounded half-up to the paisa.
func (a Amount) percentOf(bps int64) Amount {
	if a <= 0 || bps <= 0 {
		return 0
	}
	return Amount((int64(a)*bps + 5000) / 10000)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(a.Float(), 'f', -1, 64)), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*a = Amount(math.Round(f * 100))
	return nil
}
