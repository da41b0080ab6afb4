// Package bias implements the core dataset summarization pipeline: gender
// column selection, value normalization, aggregation with exact-100 percent
// rounding, bias scoring with configurable thresholds, and optional age
// statistics. The pipeline is stateless request-response; every call works
// only on its own local data.
package bias
