package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkDaysJoinsConsecutiveSameTypeRuns(t *testing.T) {
	entries := []ScheduleEntry{
		entry("2024-05-10", TypeShift),
		entry("2024-05-11", TypeShift),
		entry("2024-05-12", TypeShift),
		entry("2024-05-13", TypeOff),
	}

	marks := MarkDays(entries, "")
	require.Len(t, marks, 4)

	assert.False(t, marks["2024-05-10"].JoinLeft)
	assert.True(t, marks["2024-05-10"].JoinRight)

	assert.True(t, marks["2024-05-11"].JoinLeft)
	assert.True(t, marks["2024-05-11"].JoinRight)

	assert.True(t, marks["2024-05-12"].JoinLeft)
	assert.False(t, marks["2024-05-12"].JoinRight, "off day must not join the shift run")

	assert.False(t, marks["2024-05-13"].JoinLeft)
	assert.False(t, marks["2024-05-13"].JoinRight)
}

func TestMarkDaysJoinsAcrossMonthBoundary(t *testing.T) {
	entries := []ScheduleEntry{
		entry("2024-05-31", TypeVacation),
		entry("2024-06-01", TypeVacation),
	}

	marks := MarkDays(entries, "")
	assert.True(t, marks["2024-05-31"].JoinRight)
	assert.True(t, marks["2024-06-01"].JoinLeft)
}

func TestMarkDaysSameDayNumberDifferentMonthDoesNotJoin(t *testing.T) {
	// String-prefix reasoning would pair these; calendar arithmetic must not.
	entries := []ScheduleEntry{
		entry("2024-05-10", TypeShift),
		entry("2024-06-10", TypeShift),
	}

	marks := MarkDays(entries, "")
	assert.False(t, marks["2024-05-10"].JoinRight)
	assert.False(t, marks["2024-06-10"].JoinLeft)
}

func TestMarkDaysSelectedOverlayComposesOnEntryStyle(t *testing.T) {
	entries := []ScheduleEntry{entry("2024-05-10", TypeSick)}

	marks := MarkDays(entries, "2024-05-10")
	style := marks["2024-05-10"]
	assert.True(t, style.Selected)
	assert.Equal(t, "#F2AFAF", style.Background, "selection must not replace the type style")
}

func TestMarkDaysSelectedWithoutEntryGetsOverlayAlone(t *testing.T) {
	marks := MarkDays(nil, "2024-05-20")
	style, ok := marks["2024-05-20"]
	require.True(t, ok)
	assert.True(t, style.Selected)
	assert.Empty(t, style.Background)
}

func TestBackgroundPalette(t *testing.T) {
	cases := map[EntryType]string{
		TypeShift:    "#BFD7FF",
		TypeVacation: "#CFF0D8",
		TypeSick:     "#F2AFAF",
		TypeTrip:     "#FFD29A",
		TypeOff:      "#9FE0B5",
		TypeOther:    "#FEF3C7",
	}
	for typ, want := range cases {
		assert.Equal(t, want, BackgroundFor(entry("2024-05-01", typ)))
	}
	assert.Equal(t, "#FEF3C7", BackgroundFor(entry("2024-05-01", EntryType("unknown"))))
}
