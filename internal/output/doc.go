// Package output provides deterministic sorting and encoding for
// cogniplexity's CLI responses.
//
// # Ordering Contract
//
// Function reports are sorted by complexity.SortFunctions before being
// encoded: complexity DESC, name ASC by default, or name ASC when
// --sort=name is requested.
//
// # JSON Encoding Rules
//
// DeterministicEncode produces byte-identical output for identical input:
//
//  1. Stable key ordering: object keys are sorted alphabetically
//  2. Float formatting: rounded to at most 6 decimal places, no trailing zeros
//  3. Null handling: nil/empty-omitempty fields are omitted entirely
//
// This lets a CI pipeline diff two runs of the same tree byte-for-byte.
package output
