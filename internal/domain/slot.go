package domain

import "time"

const SlotLabelLayout = "15:04"

type Slot struct {
	Time  string    `json:"time"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type AvailableSlots struct {
	Date     string `json:"date"`
	Timezone string `json:"timezone"`
	Slots    []Slot `json:"slots"`
	Fallback bool   `json:"fallback"`
}

// Overlaps reports whether [start, end) intersects [otherStart, otherEnd).
func Overlaps(start, end, otherStart, otherEnd time.Time) bool {
	return start.Before(otherEnd) && otherStart.Before(end)
}

// Without drops the slots whose interval overlaps any of the busy intervals.
func (a *AvailableSlots) Without(busy []Interval) {
	if len(busy) == 0 {
		return
	}
	free := a.Slots[:0]
	for _, s := range a.Slots {
		taken := false
		for _, b := range busy {
			if Overlaps(s.Start, s.End, b.Start, b.End) {
				taken = true
				break
			}
		}
		if !taken {
			free = append(free, s)
		}
	}
	a.Slots = free
}

type Interval struct {
	Start time.Time
	End   time.Time
}
