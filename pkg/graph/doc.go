// Package graph records which gears mesh with which. Gears are named by
// Handle and edges are undirected, so the assembly never holds pointers
// between gear records.
package graph
