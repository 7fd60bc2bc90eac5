// Package holdings values a portfolio of equity and option positions.
//
// The package is organised as a pipeline with no persistent state:
//   - Symbol classification: a holding symbol is either a plain ticker
//     (an [Equity]) or an option [Contract] written as
//     "ROOT MM/DD/YYYY STRIKE C|P".
//   - Price resolution: a [Resolver] asks a [MarketData] provider for a unit
//     price, falling back to the nearest listed expiration and down a
//     last/mid/bid-ask ladder for contracts. Failures are returned as data in
//     a [Quotation], never raised.
//   - Aggregation: [Aggregate] turns holdings and quotations into valued
//     positions, weights and a breakdown by underlying root.
//
// [Evaluate] runs the whole pipeline and returns a [Report] that the
// renderer package formats for people and for the narrative analyst.
package holdings
