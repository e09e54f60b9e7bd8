package assetcleaner

import (
	"fmt"

	"github.com/lerenn/asset-cleaner/pkg/asset-cleaner/consts"
	"github.com/lerenn/asset-cleaner/pkg/prompt"
)

// PromptSelectItem asks the user to pick one file of the last build and
// returns its path. Files are listed with their referrer count.
func (c *realAssetCleaner) PromptSelectItem(title string) (string, error) {
	params := map[string]interface{}{
		"title": title,
	}

	return executeWithHooksAndReturn(c, consts.PromptSelectItem, params,
		func(results map[string]interface{}) (string, error) {
			choices, err := c.buildItemChoices()
			if err != nil {
				return "", err
			}

			c.VerbosePrint("Prompting user to select an item from %d choices", len(choices))
			selected, err := c.deps.Prompt.PromptSelectItem(title, choices)
			if err != nil {
				return "", fmt.Errorf("failed to get item selection: %w", err)
			}

			c.VerbosePrint("User selected item: %s", selected.Path)
			results["selected"] = selected.Path
			return selected.Path, nil
		})
}

// buildItemChoices lists every file of the last build, in catalog order.
func (c *realAssetCleaner) buildItemChoices() ([]prompt.ItemChoice, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.session == nil || c.session.result == nil {
		return nil, ErrNotBuilt
	}
	res := c.session.result

	files := res.Catalog.Files()
	choices := make([]prompt.ItemChoice, 0, len(files))
	for _, item := range files {
		choices = append(choices, prompt.ItemChoice{
			Path:   item.Path,
			Size:   item.Size,
			Detail: referrersDetail(len(res.Index.Referrers(item.Path))),
		})
	}
	return choices, nil
}

func referrersDetail(n int) string {
	switch n {
	case 0:
		return "unreferenced"
	case 1:
		return "1 referrer"
	default:
		return fmt.Sprintf("%d referrers", n)
	}
}
