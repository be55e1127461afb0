// Package pagination provides paging and sorting for list commands.
//
//   - Params: flag values and their validation
//   - Meta: page metadata included in JSON output
//   - EntrySorter: field-based sorting of ledger entries
package pagination
