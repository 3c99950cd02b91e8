// Package renderer turns simulation results into markdown reports.
//
// Renderers are pure: they read the portfolio, ledger, snapshots or report
// structs and return a string. Printing, paging and terminal styling belong
// to the caller.
package renderer
