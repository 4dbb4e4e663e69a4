package main

import "github.com/logrusorgru/aurora"

// colorizeError/colorizeSuccess/colorizeInfo wrap CLI output in the
// appropriate terminal color for its severity.
func colorizeError(message string) string {
	return aurora.Colorize(message, aurora.RedFg|aurora.BrightFg|aurora.BoldFm).String()
}

func colorizeSuccess(message string) string {
	return aurora.Colorize(message, aurora.GreenFg|aurora.BrightFg).String()
}

func colorizeInfo(message string) string {
	return aurora.Colorize(message, aurora.YellowFg|aurora.BrightFg).String()
}
