// Package salesbook provides the types and operations for a small
// sale-of-goods ledger with refund processing, backed by a single
// row-oriented CSV file.
//
// The core functionalities include:
//   - Record Keeping: each sale occupies a fixed slot (a row of the data
//     region) and carries its input fields together with derived fields
//     computed at write time (total cost, profit before and after refund).
//   - Slot Allocation: new records take the first empty slot of the
//     fixed-capacity data region.
//   - Record Matching: tolerant weight lookup and multi-field criteria
//     matching to locate records for refund processing.
//   - Refund Processing: a refund amount applied to a matched record
//     rewrites its refund-adjusted profit and the ledger summary row.
//   - Data Persistence: encoding and decoding of the ledger to and from a
//     plain CSV table (header row, data region, summary row) under an
//     exclusive file lock.
//
// This package serves as the foundational logic for the `sbk` command-line
// tool.
package salesbook
