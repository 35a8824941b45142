package chat

import (
	"sort"
	"time"
)

const (
	dayLabelLayout  = "Jan 2, 2006"
	timeLabelLayout = "3:04 PM"

	// Consecutive same-sender messages this close together collapse into
	// one visual group; only the first keeps its timestamp label.
	groupWindow = 5 * time.Minute
)

// Entry is a message decorated with display decisions for a chat view.
type Entry struct {
	Message
	ShowDivider bool
	DayLabel    string
	ShowTime    bool
	TimeLabel   string
}

// ComposeTimeline sorts messages ascending by send time and decides, per
// message, whether to show a calendar-day divider and a timestamp label.
// Calendar days are evaluated in loc so the dividers match the viewer's
// local date. A message crossing into a new day always gets a divider and
// keeps its timestamp, even when it follows the previous message by
// seconds. The whole timeline is recomputed from scratch on every call.
func ComposeTimeline(messages []Message, loc *time.Location) []Entry {
	if loc == nil {
		loc = time.UTC
	}

	sorted := make([]Message, len(messages))
	copy(sorted, messages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SentAt.Before(sorted[j].SentAt)
	})

	entries := make([]Entry, 0, len(sorted))
	var lastDay string
	for i, m := range sorted {
		local := m.SentAt.In(loc)
		day := local.Format("2006-01-02")

		e := Entry{
			Message:     m,
			ShowDivider: day != lastDay,
			ShowTime:    true,
			TimeLabel:   local.Format(timeLabelLayout),
		}
		if e.ShowDivider {
			e.DayLabel = local.Format(dayLabelLayout)
			lastDay = day
		}

		if !e.ShowDivider && i > 0 {
			prev := sorted[i-1]
			if prev.Sender == m.Sender && m.SentAt.Sub(prev.SentAt) <= groupWindow {
				e.ShowTime = false
			}
		}
		if !e.ShowTime {
			e.TimeLabel = ""
		}

		entries = append(entries, e)
	}
	return entries
}
