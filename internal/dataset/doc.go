// Package dataset turns uploaded CSV and Excel files into the RawTable
// consumed by the bias summarizer, and validates uploads before parsing.
package dataset
