package main

// Column widths for table output.
const (
	titleWidth = 40
	labelWidth = 28
)

// Valid export formats.
var validFormats = []string{"json", "csv", "yaml"}
