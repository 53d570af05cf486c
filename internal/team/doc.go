// Package team canonicalizes football club names and splits fixture titles
// into their two participants.
//
// Names are resolved against a fixed alias table. Text that is not in the
// table passes through trimmed but otherwise untouched, so it simply fails
// any later membership check.
package team
