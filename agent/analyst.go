// Package agent asks a large language model for a narrative analysis of a
// valued portfolio.
package agent

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when an analyst is built without credentials.
var ErrNotConfigured = errors.New("analyst not configured")

// Analyst produces a free form analysis of a portfolio summary.
//
// An empty question asks for a comprehensive review.
type Analyst interface {
	Analyze(ctx context.Context, summary, question string) (string, error)
}

// maxOutputTokens bounds the length of an answer.
const maxOutputTokens = 2500

// SystemInstruction is the analyst persona shared by every model.
const SystemInstruction = `You are an expert stock analyst specializing in stock and options portfolio analysis, risk assessment, and investment strategy.
Analyze the provided portfolio data and provide insightful, actionable recommendations. Consider:
- Portfolio diversification and concentration risk
- Sector exposure and market correlation
- Risk-return characteristics
- Potential improvements or concerns
- Overall portfolio health and balance
- Identify ETFs and look through the holdings of the ETF for diversification and concentration risk

Be specific, data-driven, and professional in your analysis.`

// Prompt builds the user prompt for summary and an optional question.
func Prompt(summary, question string) string {
	if question != "" {
		return fmt.Sprintf(`Portfolio Information:
%s

Question: %s

Please provide a detailed analysis addressing the question above.`, summary, question)
	}
	return fmt.Sprintf(`Portfolio Information:
%s

Please provide a comprehensive analysis of this portfolio, including:
1. Overall assessment
2. Risk analysis
3. Diversification assessment
4. Recommendations for improvement`, summary)
}
