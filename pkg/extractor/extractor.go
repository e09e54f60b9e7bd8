// Package extractor provides the dependency extraction primitive consumed by the graph builder.
package extractor

import (
	"context"

	"github.com/lerenn/asset-cleaner/pkg/catalog"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=extractor.go -destination=mocks/extractor.gen.go -package=mocks

// Extractor returns the immediate, non-recursive dependencies of one item.
// The returned slice may be empty and may contain the input path itself.
type Extractor interface {
	GetDependencies(path string) ([]string, error)
}

// Preparer is implemented by extractors that need to see the whole catalog
// before the first GetDependencies call of a build.
type Preparer interface {
	Prepare(ctx context.Context, items []catalog.Item) error
}

// Identifier is implemented by extractors that know the stable identifier
// other items use to reference a path.
type Identifier interface {
	IdentifierOf(path string) (string, bool)
}

// Func adapts a function to the Extractor interface.
type Func func(path string) ([]string, error)

// GetDependencies calls f(path).
func (f Func) GetDependencies(path string) ([]string, error) {
	return f(path)
}
