// Package track defines the data-track capability consumed by the repaint
// core and provides a FASTA-backed GC-content track.
//
// The core only ever asks two things of a track: whether it can paint a
// viewport with resident data, and to fetch that data (blocking).
package track
