package main

import (
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"

	daycounter "daycounter/internal"
)

var (
	accent = lipgloss.Color("#007BFF")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#333333")).
			MarginBottom(1)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#333333")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#CCCCCC")).
			Padding(0, 2)

	badgeStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Foreground(accent).
			Bold(true).
			Width(9).
			Align(lipgloss.Center).
			Padding(1, 0)

	hintStyle = lipgloss.NewStyle().Faint(true)
)

// Render draws the counter screen: title, date label and the count badge.
func Render(view daycounter.View, now time.Time) string {
	hint := "days since"
	if view.StartDate != "" && view.StartDate > now.Format("2006-01-02") {
		hint = "days until"
	}
	if view.StartDate == "" {
		hint = "daycounterctl select 2006-01-02"
	}

	return lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(view.Title),
		dateStyle.Render(view.DateLabel),
		badgeStyle.Render(strconv.Itoa(view.DaysCount)),
		hintStyle.Render(hint),
	)
}
