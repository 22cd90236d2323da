package main

import (
	"fmt"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"clipforge/internal/encode"
)

var titleCaser = cases.Title(language.English)

func titleCase(value string) string {
	return titleCaser.String(value)
}

func renderResultTable(result encode.Result) string {
	rows := [][]string{
		{"Status", titleCase(string(result.Status))},
		{"Attempts", strconv.Itoa(result.Attempts)},
	}
	if result.Strategy != "" {
		rows = append(rows, []string{"Strategy", result.Strategy})
	}
	if result.Succeeded() {
		rows = append(rows,
			[]string{"Output", result.OutputPath},
			[]string{"Dimensions", fmt.Sprintf("%dx%d", result.Width, result.Height)},
			[]string{"Duration", formatSecs(result.Duration)},
			[]string{"Size", formatBytes(result.FileSize)},
		)
		if result.ThumbnailPath != "" {
			rows = append(rows, []string{"Thumbnail", result.ThumbnailPath})
		}
	} else {
		rows = append(rows,
			[]string{"Retryable", strconv.FormatBool(result.Retryable)},
			[]string{"Error", result.ErrorMessage},
		)
	}
	return fieldTable(rows)
}

func formatSecs(seconds float64) string {
	if seconds <= 0 {
		return "0s"
	}
	if seconds < 60 {
		return fmt.Sprintf("%.1fs", seconds)
	}
	minutes := int(seconds) / 60
	remainder := seconds - float64(minutes*60)
	return fmt.Sprintf("%dm%04.1fs", minutes, remainder)
}

func formatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
