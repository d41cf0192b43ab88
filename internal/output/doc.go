// Package output persists the finished framebuffer.
//
// It is a pure sink: it receives a fully-rendered image and does not know
// about events, palettes or timestamp ranges. Its only decisions are the
// nearest-neighbor upscale to the viewing resolution and the PNG encode.
package output
