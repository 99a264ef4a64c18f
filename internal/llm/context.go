package llm

import "context"

// Purpose labels what a generation call was for. It is recorded with every
// request event so usage can be broken down per feature.
type Purpose string

const (
	// PurposeResponses is a batch of simulated student answers.
	PurposeResponses Purpose = "responses"
	// PurposeAnalysis is the teacher-facing review of a batch.
	PurposeAnalysis Purpose = "analysis"
	// PurposeUnknown is reported when the caller set nothing.
	PurposeUnknown Purpose = "unknown"
)

type purposeKey struct{}

// WithPurpose tags ctx so the logging middleware can attribute the call.
func WithPurpose(ctx context.Context, p Purpose) context.Context {
	return context.WithValue(ctx, purposeKey{}, p)
}

// PurposeFrom returns the tag set by WithPurpose, or PurposeUnknown.
func PurposeFrom(ctx context.Context) Purpose {
	if p, ok := ctx.Value(purposeKey{}).(Purpose); ok && p != "" {
		return p
	}
	return PurposeUnknown
}
