// Package sim provides an in-process stand-in for rigctld driving Hamlib's
// dummy rig (model 1).
//
// It speaks the same line protocol as the real daemon for the frequency,
// mode and power commands, in both the plain and the extended response
// layouts. Anything else is answered with RPRT -4, as rigctld does for a
// backend that lacks the function.
package sim
