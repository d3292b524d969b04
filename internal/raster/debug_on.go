//go:build rasterdebug

package raster

// Contract checks (bounds, edge ordering, vertex indices) panic when built
// with -tags rasterdebug.
const debugChecks = true
