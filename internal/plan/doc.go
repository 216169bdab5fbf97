// Package plan builds the mapping plan of a (source, target) struct pair.
//
// Synthesis pipeline:
//  1. Introspect both types into properties and fields
//  2. Match members by case-folded name: properties first, then fields;
//     outer loop over source members, first target match wins
//  3. Resolve a conversion strategy for every matched pair
//  4. Emit diagnostics (duplicate matches, skipped collections, unmatched targets)
//     and fail on unsupported shapes or ambiguous members
//
// The plan is frozen once built; package compile turns it into closures.
package plan
