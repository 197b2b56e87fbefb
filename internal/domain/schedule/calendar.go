package schedule

// Type-keyed background palette. Unknown types fall back to the "other"
// color.
const (
	colorShift    = "#BFD7FF"
	colorVacation = "#CFF0D8"
	colorSick     = "#F2AFAF"
	colorTrip     = "#FFD29A"
	colorOff      = "#9FE0B5"
	colorDefault  = "#FEF3C7"
)

// BackgroundFor returns the calendar cell color for an entry.
func BackgroundFor(e ScheduleEntry) string {
	switch e.Type {
	case TypeShift:
		return colorShift
	case TypeVacation:
		return colorVacation
	case TypeSick:
		return colorSick
	case TypeTrip:
		return colorTrip
	case TypeOff:
		return colorOff
	default:
		return colorDefault
	}
}

// DayStyle is the opaque per-date annotation the calendar display consumes.
// JoinLeft/JoinRight suppress the rounded corner facing a same-type
// neighbor so consecutive days render as one continuous run.
type DayStyle struct {
	Background string
	JoinLeft   bool
	JoinRight  bool
	Selected   bool
}

// MarkDays maps an entry list and the selected date to per-date styles.
// Pure: recomputed from scratch on every call, no incremental state.
// Adjacency uses calendar-date arithmetic, so runs join across month
// boundaries.
func MarkDays(entries []ScheduleEntry, selectedDate string) map[string]DayStyle {
	byDate := indexByDate(entries)

	marks := make(map[string]DayStyle, len(entries)+1)
	for _, e := range entries {
		style := DayStyle{Background: BackgroundFor(e)}
		if prev, err := AdjacentDate(e.Date, -1); err == nil {
			if n, ok := byDate[prev]; ok && n.Type == e.Type {
				style.JoinLeft = true
			}
		}
		if next, err := AdjacentDate(e.Date, 1); err == nil {
			if n, ok := byDate[next]; ok && n.Type == e.Type {
				style.JoinRight = true
			}
		}
		marks[e.Date] = style
	}

	if selectedDate != "" {
		// Emphasis composes on top of the type style; a bare selected day
		// still gets the overlay.
		style := marks[selectedDate]
		style.Selected = true
		marks[selectedDate] = style
	}

	return marks
}
