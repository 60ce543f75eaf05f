// Package docdex provides a documentation search-index pipeline: a
// build-time index builder that converts a tree of documentation pages
// into structured JSON search records, and a runtime loader that fetches,
// normalizes, and sanitizes those records into an in-memory document
// store for full-text search clients.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, http/).
package docdex
