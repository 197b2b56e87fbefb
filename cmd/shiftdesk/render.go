package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/shiftdesk/shiftdesk/internal/domain/schedule"
)

// ANSI 256-color approximations of the calendar palette.
var ansiBackgrounds = map[string]int{
	"#BFD7FF": 153, // shift
	"#CFF0D8": 194, // vacation
	"#F2AFAF": 217, // sick
	"#FFD29A": 222, // trip
	"#9FE0B5": 151, // off
	"#FEF3C7": 230, // other
}

func paint(text string, bg int) string {
	return fmt.Sprintf("\x1b[48;5;%dm\x1b[30m%s\x1b[0m", bg, text)
}

func (a *app) renderMonth() {
	ym := a.rec.Month()
	first, err := time.Parse("2006-01-02", schedule.FirstOfMonth(ym))
	if err != nil {
		return
	}
	marks := schedule.MarkDays(a.rec.Entries(), a.selected)

	subject := "me"
	if a.rec.View() == schedule.ViewDept {
		subject = "dept"
		if id, ok := a.rec.SelectedEmployee(); ok {
			for _, emp := range a.rec.Roster() {
				if emp.UserID == id {
					subject = emp.DisplayName()
					break
				}
			}
		}
	}
	fmt.Printf("\n%s  (%s)", first.Format("January 2006"), subject)
	if a.rec.Loading() {
		fmt.Print("  loading...")
	}
	fmt.Println()
	if err := a.rec.Err(); err != nil {
		fmt.Println("!", err)
	}

	fmt.Println(" Mo  Tu  We  Th  Fr  Sa  Su")
	// Monday-first column of the 1st.
	col := (int(first.Weekday()) + 6) % 7
	fmt.Print(strings.Repeat("    ", col))

	daysInMonth := first.AddDate(0, 1, -1).Day()
	for day := 1; day <= daysInMonth; day++ {
		date := first.AddDate(0, 0, day-1).Format("2006-01-02")
		cell := fmt.Sprintf(" %2d", day)
		style, marked := marks[date]
		if marked && style.Background != "" {
			if bg, ok := ansiBackgrounds[style.Background]; ok {
				// A joined right edge keeps the background running into
				// the gap, so same-type runs read as one block.
				gap := " "
				if style.JoinRight {
					gap = paint(" ", bg)
				}
				cell = paint(cell, bg) + gap
			} else {
				cell += " "
			}
		} else {
			cell += " "
		}
		if marked && style.Selected {
			cell = "\x1b[1m" + cell + "\x1b[0m"
		}
		fmt.Print(cell)
		col++
		if col == 7 {
			fmt.Println()
			col = 0
		}
	}
	if col != 0 {
		fmt.Println()
	}

	if entry, ok := a.rec.EntryOn(a.selected); ok {
		line := fmt.Sprintf("%s: %s", entry.Date, entry.Type)
		if entry.StartTime != nil && entry.EndTime != nil {
			line += fmt.Sprintf(" %s-%s", schedule.ClockShort(*entry.StartTime), schedule.ClockShort(*entry.EndTime))
		}
		if entry.Title != nil {
			line += " " + *entry.Title
		}
		fmt.Println(line)
	} else {
		fmt.Printf("%s: free\n", a.selected)
	}
}
