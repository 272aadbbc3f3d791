package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/TheMichaelB/quihex/internal/models"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)

	statusColors = map[models.Status]*color.Color{
		models.StatusNew:    color.New(color.FgGreen, color.Bold),
		models.StatusUpdate: color.New(color.FgYellow, color.Bold),
		models.StatusStable: color.New(color.FgWhite),
		models.StatusSkip:   color.New(color.FgHiBlack),
	}
)

func printSuccess(format string, args ...interface{}) {
	successColor.Fprintf(os.Stdout, format+"\n", args...)
}

func printError(format string, args ...interface{}) {
	errorColor.Fprintf(os.Stderr, format+"\n", args...)
}

func printWarning(format string, args ...interface{}) {
	warningColor.Fprintf(os.Stderr, format+"\n", args...)
}

func printInfo(format string, args ...interface{}) {
	infoColor.Fprintf(os.Stdout, format+"\n", args...)
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		printError("encode JSON: %v", err)
	}
}

// statusLabel pads before coloring so columns line up.
func statusLabel(status models.Status) string {
	label := fmt.Sprintf("%-6s", status)
	if c, ok := statusColors[status]; ok {
		return c.Sprint(label)
	}
	return label
}
