package scheduler

import (
	"fmt"
	"strings"
	"time"
)

// Slot is a start time of day offered to the operator.
type Slot struct {
	Hour   int
	Minute int
}

// String renders the slot as "1:30 PM".
func (s Slot) String() string {
	return time.Date(0, 1, 1, s.Hour, s.Minute, 0, 0, time.UTC).Format("3:04 PM")
}

func (s Slot) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Slot) UnmarshalText(text []byte) error {
	parsed, err := ParseSlot(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

const slotLayout = "3:04 PM"

var (
	firstSlot    = Slot{Hour: 11}
	lastSlot     = Slot{Hour: 16}
	slotInterval = 30 * time.Minute
)

// Slots lists the bookable start times: 11:00 AM through 4:00 PM every half
// hour.
func Slots() []Slot {
	var out []Slot
	start := firstSlot.Hour*60 + firstSlot.Minute
	end := lastSlot.Hour*60 + lastSlot.Minute
	step := int(slotInterval / time.Minute)
	for m := start; m <= end; m += step {
		out = append(out, Slot{Hour: m / 60, Minute: m % 60})
	}
	return out
}

// ParseSlot reads "h:mm AM" and rejects times that are not offered.
func ParseSlot(raw string) (Slot, error) {
	parsed, err := time.Parse(slotLayout, strings.ToUpper(strings.TrimSpace(raw)))
	if err != nil {
		return Slot{}, fmt.Errorf("%w: %q", ErrUnknownSlot, raw)
	}
	slot := Slot{Hour: parsed.Hour(), Minute: parsed.Minute()}
	for _, offered := range Slots() {
		if offered == slot {
			return slot, nil
		}
	}
	return Slot{}, fmt.Errorf("%w: %q", ErrUnknownSlot, raw)
}

// Durations lists the meeting lengths offered, in minutes.
func Durations() []time.Duration {
	return []time.Duration{30 * time.Minute, 60 * time.Minute, 90 * time.Minute, 120 * time.Minute}
}

// DefaultDuration is preselected.
const DefaultDuration = 60 * time.Minute

func validDuration(d time.Duration) bool {
	for _, offered := range Durations() {
		if offered == d {
			return true
		}
	}
	return false
}
