package explain

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/fairlens/fairlens/internal/domain"
	"github.com/fairlens/fairlens/internal/ports"
)

// Explanation modes. Plain mode targets loan officers and applicants;
// technical mode targets compliance engineers reviewing the evaluation.
const (
	ModePlain     = "plain"
	ModeTechnical = "technical"
)

// systemPrompt frames the assistant's role for every explanation
// request.
const systemPrompt = `You are FairLens, an assistant specialized in explaining financial compliance decisions.
Your role is to provide clear, accurate explanations about loan application compliance decisions
based on the provided data. Focus on:

1. Explaining why a decision was made in simple, non-technical language
2. Highlighting the key factors that influenced the decision
3. Explaining regulatory requirements relevant to the decision
4. Providing context about the compliance framework being applied
5. Suggesting potential remediation steps when applicable

Keep explanations concise, factual, and helpful. Avoid speculation beyond the provided data.`

// Explainer generates natural language explanations of compliance
// decisions. When no completer is configured, or the provider fails, it
// degrades to a deterministic summary built from the decision itself.
type Explainer struct {
	completer ports.ChatCompleter
}

// NewExplainer creates an explainer backed by the given completer. A
// nil completer is valid and yields deterministic summaries only.
func NewExplainer(completer ports.ChatCompleter) *Explainer {
	return &Explainer{completer: completer}
}

// Explain produces a narrative explanation of the decision. The mode
// selects the target audience; an empty mode means ModePlain. A
// non-empty query directs the explanation at a specific question.
func (e *Explainer) Explain(ctx context.Context, decision domain.Decision, mode, query string) (string, error) {
	if mode == "" {
		mode = ModePlain
	}

	if e.completer == nil {
		return Fallback(decision), nil
	}

	prompt, err := buildPrompt(decision, mode, query)
	if err != nil {
		return "", fmt.Errorf("building explanation prompt: %w", err)
	}

	content, err := e.completer.Complete(ctx, prompt, map[string]any{
		"system":      systemPrompt,
		"temperature": 0.3,
		"max_tokens":  1000,
	})
	if err != nil || strings.TrimSpace(content) == "" {
		// Provider failures never block the decision flow.
		return Fallback(decision), nil
	}
	return strings.TrimSpace(content), nil
}

// buildPrompt renders the decision as JSON context with mode- and
// query-specific instructions.
func buildPrompt(decision domain.Decision, mode, query string) (string, error) {
	context, err := json.MarshalIndent(decision, "", "  ")
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Please explain the following compliance decision:\n\n%s\n\n", context)

	if mode == ModeTechnical {
		b.WriteString("Write for a compliance engineer: reference the factor scores, requirement thresholds, and weighted aggregation explicitly.\n")
	} else {
		b.WriteString("Write for a loan officer without a technical background, in plain language.\n")
	}

	if query != "" {
		fmt.Fprintf(&b, "Specifically address this question: %s", query)
	} else {
		b.WriteString("Provide a clear explanation of why this decision was made.")
	}
	return b.String(), nil
}

// Fallback builds a deterministic explanation from the decision content
// alone. It covers the overall outcome, the factor scores, and the top
// remediation suggestion when present.
func Fallback(decision domain.Decision) string {
	status := "does not comply"
	if decision.Compliance.Compliant {
		status = "complies"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Application %s %s with %s: %d of %d requirements met (%.1f%%), overall trust score %.1f/100.\n",
		decision.ApplicationID,
		status,
		decision.Framework,
		decision.Compliance.CompliantCount,
		decision.Compliance.TotalCount,
		decision.Compliance.CompliancePercentage,
		decision.Trust.OverallScore)

	factorIDs := make([]string, 0, len(decision.Trust.Factors))
	for id := range decision.Trust.Factors {
		factorIDs = append(factorIDs, id)
	}
	sort.Strings(factorIDs)
	for _, id := range factorIDs {
		factor := decision.Trust.Factors[id]
		fmt.Fprintf(&b, "- %s scored %.1f/100.\n", factor.Name, factor.Score)
	}

	if remediation := decision.Compliance.Remediation; remediation != nil {
		fmt.Fprintf(&b, "Priority remediation (%s, scored %.1f): %s",
			remediation.Priority.ID,
			remediation.Priority.Score,
			remediation.Suggestion)
	}
	return strings.TrimSpace(b.String())
}
