// Package exporter writes derived comparison tables to disk so users
// can pull the tables the dashboard renders. CSV output optionally
// carries a UTF-8 BOM for Excel; XLSX output packs one sheet per metric
// bucket.
package exporter
