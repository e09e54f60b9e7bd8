// Package defaulthooks provides default hook implementations for the asset cleaner.
package defaulthooks

import (
	"github.com/lerenn/asset-cleaner/pkg/asset-cleaner/consts"
	"github.com/lerenn/asset-cleaner/pkg/hooks"
	"github.com/lerenn/asset-cleaner/pkg/logger"
)

// NewDefaultHooksManager creates a hooks manager. When l is not nil, a
// logging hook is registered for every operation.
func NewDefaultHooksManager(l logger.Logger) (hooks.HookManagerInterface, error) {
	hm := hooks.NewHookManager()
	if l == nil {
		return hm, nil
	}

	logging := hooks.NewLoggingHook(l)
	for _, op := range consts.Operations() {
		if err := hm.RegisterPreHook(op, logging); err != nil {
			return nil, err
		}
		if err := hm.RegisterPostHook(op, logging); err != nil {
			return nil, err
		}
		if err := hm.RegisterErrorHook(op, logging); err != nil {
			return nil, err
		}
	}

	return hm, nil
}
