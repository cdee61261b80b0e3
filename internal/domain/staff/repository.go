package staff

import "context"

// StaffRepository is the read side of the staffing store.
type StaffRepository interface {
	GetByID(ctx context.Context, id string) (Member, error)
	GetByName(ctx context.Context, name string) (Member, error)

	// List returns every staff member ordered by name.
	List(ctx context.Context) ([]Member, error)

	// ListActive returns active staff ordered by name.
	ListActive(ctx context.Context) ([]Member, error)

	// Upsert seeds or replaces a profile. Used by fixtures and tests.
	Upsert(ctx context.Context, member Member) (Member, error)
}
