// Package raster turns events into pixels.
//
// Two stages live here. Normalize reduces the event sequence to its
// timestamp extent, which fixes the horizontal scale. Rasterizer then maps
// each event to a framebuffer coordinate:
//
//	x = round((timestamp - min) / (max - min) * (width - 1))
//	y = note
//	color = palette[channel]
//
// Rendering is deterministic: the framebuffer is a pure function of the
// ordered event sequence and the palette, with last-writer-wins semantics
// at colliding coordinates.
package raster
