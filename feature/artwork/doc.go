// Package artwork implements the media sync engine of the importer.
//
// The gallery bucket lays artwork assets out as <three-digit folder>/<base
// name>.<extension>, where the folder encodes the artwork ID and the base
// name pairs a still (jpg) with its motion asset (mp4). This package turns
// that layout into artwork_media rows the website reads.
//
// # Pipeline
//
// A sync run flows through four stages:
//
//  1. ParseObjectKey filters the raw listing into Assets; foreign keys are
//     counted and dropped, never fatal.
//  2. BuildIndex groups Assets by artwork ID and base name.
//  3. Resolver decides each base group's record: a still plus motion pair
//     becomes one video record with the still as poster, a lone still
//     becomes an image record, and a motion asset without a poster is
//     diagnosed and dropped. It also derives the sort order from the leading
//     digits of the base name and builds the public URLs.
//  4. Reconciler replaces each artwork's rows inside its own transaction:
//     delete everything for the artwork, insert the resolved records, commit.
//     A failed step rolls the artwork back and aborts the run; artworks
//     committed earlier stay committed.
//
// Per-artwork atomicity is the guarantee the website relies on: readers
// never observe an artwork half-replaced or mixing rows of two runs.
//
// # Entry Points
//
// Service wraps the pipeline for the CLI and HTTP surface: Sync runs a
// reconciliation (concurrent triggers share one run), ListMedia reads the
// stored rows of one artwork, Preview resolves one artwork straight from the
// bucket. Feature/Handler expose these over Fiber routes.
package artwork
