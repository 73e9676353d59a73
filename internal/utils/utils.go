package utils

import (
	"fmt"
	"strings"
)

type InputUtils struct{}

// AskConfirmation asks user for yes/no confirmation
func (i *InputUtils) AskConfirmation(message string, force bool) bool {
	if force {
		return true
	}
	fmt.Printf("%s (y/N): ", message)
	var response string
	fmt.Scanln(&response)
	return isYes(response)
}

func isYes(response string) bool {
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

// PrintTable draws rows as a box table with one column per entry of columns.
func PrintTable(columns []string, rows []map[string]interface{}) {
	fmt.Print(FormatTable(columns, rows))
}

func FormatTable(columns []string, rows []map[string]interface{}) string {
	if len(rows) == 0 {
		return ""
	}

	colWidths := make(map[string]int)
	for _, col := range columns {
		colWidths[col] = len(col)
	}

	for _, row := range rows {
		for _, col := range columns {
			val := formatValue(row[col])
			if len(val) > colWidths[col] {
				colWidths[col] = len(val)
			}
		}
	}

	var b strings.Builder
	border := func(left, mid, right string) {
		b.WriteString(left)
		for i, col := range columns {
			b.WriteString(strings.Repeat("─", colWidths[col]+2))
			if i < len(columns)-1 {
				b.WriteString(mid)
			}
		}
		b.WriteString(right + "\n")
	}

	border("┌", "┬", "┐")

	b.WriteString("│")
	for _, col := range columns {
		fmt.Fprintf(&b, " %-*s │", colWidths[col], col)
	}
	b.WriteString("\n")

	border("├", "┼", "┤")

	for _, row := range rows {
		b.WriteString("│")
		for _, col := range columns {
			fmt.Fprintf(&b, " %-*s │", colWidths[col], formatValue(row[col]))
		}
		b.WriteString("\n")
	}

	border("└", "┴", "┘")
	return b.String()
}

func formatValue(val interface{}) string {
	if val == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", val)
}
