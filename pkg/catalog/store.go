package catalog

import "context"

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=store.go -destination=mocks/store.gen.go -package=mocks

// Store enumerates the content items of a project.
type Store interface {
	// Enumerate returns every item under the managed root, folders included.
	Enumerate(ctx context.Context) ([]Item, error)
}
