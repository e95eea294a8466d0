package record

import "context"

// Refresher is the externally implemented data-fetching collaborator.
// The core defines only the protocol: Refresh runs to completion before the
// triggering read continues, its returned mapping is merged as new source
// data (new keys win), and its errors propagate unchanged out of
// Read/Reload.
//
// Implementations must call rec.MarkFullyLoaded when no further refreshes
// are meaningful. Leaving the flag unset means every subsequent cache miss
// re-triggers Refresh; that is the intended lazy-retry behaviour for
// sources that page data in, not a bug. An empty mapping return is valid
// either way.
type Refresher interface {
	Refresh(ctx context.Context, rec *Record) (map[string]any, error)
}

// RefresherFunc adapts a plain function to the Refresher interface.
type RefresherFunc func(ctx context.Context, rec *Record) (map[string]any, error)

// Refresh implements Refresher.
func (f RefresherFunc) Refresh(ctx context.Context, rec *Record) (map[string]any, error) {
	return f(ctx, rec)
}
