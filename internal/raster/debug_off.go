//go:build !rasterdebug

package raster

const debugChecks = false
