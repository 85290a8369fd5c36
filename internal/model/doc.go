package model

// Package model defines the domain data structures shared across the
// pipeline: stream categories and descriptors, resolved video metadata,
// quality lists, download requests, and the fixed hh:mm:ss clock format
// used for trim ranges.
