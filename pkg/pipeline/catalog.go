package pipeline

import (
	"context"

	"github.com/matzehuels/tilelay/pkg/observability"
	"github.com/matzehuels/tilelay/pkg/pattern"
)

// LoadCatalog reads the pattern catalog at path and reports the load to the
// pipeline hooks.
func LoadCatalog(ctx context.Context, path string) (*pattern.Catalog, error) {
	cat, err := pattern.LoadFile(path)
	n := 0
	if cat != nil {
		n = len(cat.Patterns)
	}
	observability.Pipeline().OnCatalogLoad(ctx, path, n, err)
	if err != nil {
		return nil, err
	}
	return cat, nil
}
