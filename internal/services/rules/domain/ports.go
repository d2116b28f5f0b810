// Package domain holds the contracts of the expression-rule provider
package domain

import (
	"context"

	"transcriba/internal/core/rules"
)

// ProviderPort supplies the permitted-expression rule set for a language
// implementations must be safe for concurrent use
type ProviderPort interface {
	Rules(ctx context.Context, language string) (rules.Set, error)
}
