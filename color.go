package main

import "image/color"

var (
	curveColor    = color.NRGBA{R: 0x46, G: 0x82, B: 0xb4, A: 0xff} // #4682b4
	tangentColor  = color.NRGBA{R: 0xcd, G: 0x5c, B: 0x5c, A: 0xff} // #cd5c5c
	integralEdge  = color.NRGBA{R: 0x22, G: 0x8b, B: 0x22, A: 0xff} // #228b22
	integralColor = color.NRGBA{R: 0x22, G: 0x8b, B: 0x22, A: 80}

	majorGridColor = color.NRGBA{A: 60}
	minorGridColor = color.NRGBA{A: 35}
	axisColor      = color.NRGBA{A: 180}
	hoverColor     = color.NRGBA{R: 255, G: 255, B: 255, A: 200}
	errorColor     = color.NRGBA{R: 150, A: 255}
)
