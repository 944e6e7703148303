package logger

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// ProgressBar renders a fixed-width ASCII bar of passed checks.
type ProgressBar struct {
	current     int
	total       int
	width       int
	enableColor bool
}

// NewProgressBar creates a bar for total items, width characters wide.
func NewProgressBar(total, width int, enableColor bool) *ProgressBar {
	if width < 1 {
		width = 10
	}
	return &ProgressBar{total: total, width: width, enableColor: enableColor}
}

// Update sets the number of completed items.
func (pb *ProgressBar) Update(current int) {
	pb.current = current
}

// Percentage returns the progress percentage (0-100)
func (pb *ProgressBar) Percentage() int {
	if pb.total <= 0 {
		return 0
	}
	perc := (pb.current * 100) / pb.total
	if perc > 100 {
		return 100
	}
	if perc < 0 {
		return 0
	}
	return perc
}

// Render returns the bar, e.g. "[======    ] 2/3 (66%)". With color enabled
// a complete bar is green and anything less is red.
func (pb *ProgressBar) Render() string {
	perc := pb.Percentage()
	filled := (perc * pb.width) / 100

	bar := "[" + strings.Repeat("=", filled) + strings.Repeat(" ", pb.width-filled) + "]"
	result := fmt.Sprintf("%s %d/%d (%d%%)", bar, pb.current, pb.total, perc)

	if !pb.enableColor {
		return result
	}
	if perc == 100 {
		return color.New(color.FgGreen).Sprint(result)
	}
	return color.New(color.FgRed).Sprint(result)
}
