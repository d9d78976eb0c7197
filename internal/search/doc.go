// Package search holds the keyword model and the scoring side of docrank:
// compiled patterns, weighted entries grouped into topics, the per-entry hit
// accumulators filled by the scan engine, and per-topic ranking.
package search
