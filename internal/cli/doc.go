// Package cli implements the bigmatches command-line interface.
//
// The root command loads settings and the feed list, runs the merge over
// every feed, writes the merged calendar and prints a one-line JSON run
// summary on stdout.
package cli
