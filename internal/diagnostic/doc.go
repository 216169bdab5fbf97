// Package diagnostic collects the findings of mapper synthesis.
//
// Key capabilities:
//   - Unmatched target members with near-miss suggestions
//   - Duplicate matches skipped by the first-match-wins rule
//   - Collection pairs left without a fragment
//   - Fatal shape and ambiguity errors joined into one error
package diagnostic
