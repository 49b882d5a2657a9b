// Package app wires the dashboard helpers together behind one handle:
// configuration, logging, discovery, metric building, exporting and the
// memoization store. The dashboard process constructs one App and calls
// its memoized listing methods on every render cycle.
package app
