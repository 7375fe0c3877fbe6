// Package loadsched turns (viewports × tracks) into load units, runs them on a
// fixed-size worker pool and reports one completion per cycle once every unit
// has finished or failed.
//
// Units of one cycle have no ordering relationship with each other. The only
// guarantee is at the cycle boundary: the completion callback fires exactly
// once, after the last unit.
package loadsched
