package records

import "context"

// Store serves the loaded record snapshot. Identity arguments are normalized
// by implementations before matching, so callers may pass raw strings.
//
// Duplicate identities inside a collection are legal; every FindBy* lookup
// returns the first match in insertion order (first-loaded wins). Missing
// matches return sentinel.ErrNotFound — callers that implement outer-join
// semantics translate that into zero defaults, never into a failure.
type Store interface {
	// Replace atomically swaps in a complete snapshot. It is the only write
	// operation; there is no removal or incremental mutation.
	Replace(ctx context.Context, snap Snapshot) error

	Registry(ctx context.Context) ([]RegistryEntry, error)
	Incomes(ctx context.Context) ([]IncomeEntry, error)
	BirthEstimates(ctx context.Context) ([]EstimatedBirthEntry, error)
	Children(ctx context.Context) ([]ChildEntry, error)

	FindRegistryByIdentity(ctx context.Context, identity string) (*RegistryEntry, error)
	FindIncomeByIdentity(ctx context.Context, identity string) (*IncomeEntry, error)
	FindBirthEstimateByParent(ctx context.Context, identity string) (*EstimatedBirthEntry, error)
	FindChildByParent(ctx context.Context, identity string) (*ChildEntry, error)
}
