package render

import "tinygo.org/x/drivers"

// Canvas is a tinygo display so tinyfont can write into it
var _ drivers.Displayer = (*Canvas)(nil)
