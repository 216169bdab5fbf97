// Package match compares member names.
//
// Key functions:
//   - Fold, Equal, Index: case-insensitive name equality used for member matching
//   - NormalizeIdent, TokenizeIdent: separator and CamelCase aware normalization
//   - Levenshtein, Similarity, Suggest: near-miss suggestions for unmatched members
package match
