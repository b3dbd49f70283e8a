package store

// Package store implements the synchronized item collection shared by all
// background jobs, plus the flat CSV export/import of discovered records.
