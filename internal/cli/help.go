package cli

import (
	"fmt"
	"io"
)

// ShowHelp prints usage information.
func ShowHelp(w io.Writer) {
	_, _ = fmt.Fprint(w, `Cooper Test VO2 Max Estimator
=============================

Estimates VO2 max from the distance covered in a 12-minute run and ranks it
against age and gender reference norms.

Usage:
  cooper -gender Male -age 25 -distance 2.4 [options]
  cooper -gender Female -age 41 -fit run.fit [options]
  cooper -reference [-format json|yaml]

Options:
  -gender string     Male or Female
  -age int           age in years, 5 to 99
  -distance float    kilometers covered in 12 minutes, 0 to 20
  -fit string        read the distance from a FIT activity instead
  -format string     text, json or yaml (default "text")
  -chart string      write the distribution chart to this .png or .svg file
  -width int         chart width in pixels (default 640)
  -height int        chart height in pixels (default 480)
  -samples int       density points plotted (default 1000)
  -reference         print the reference table and exit
  -log-level string  debug, info, warn or error (default "warn")
  -help              show this help message
`)
}
