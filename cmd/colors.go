package cmd

import "github.com/fatih/color"

var (
	colorHeader = color.New(color.FgBlue, color.Bold)
	colorError  = color.New(color.FgRed)
	colorWarn   = color.New(color.FgYellow)
	colorOK     = color.New(color.FgGreen)
	colorFaint  = color.New(color.Faint)
)
