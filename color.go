package main

import "image/color"

var (
	white       = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	black       = color.NRGBA{A: 0xff}
	axisColor   = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	panelBorder = color.NRGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
	errorColor  = color.NRGBA{R: 150, A: 255}
)
