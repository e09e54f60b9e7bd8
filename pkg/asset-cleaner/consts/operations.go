// Package consts provides operation name constants for the hook system.
package consts

// Operation names for the hook system.
const (
	// Graph operations.
	Build = "Build"

	// Query operations.
	FindUnused    = "FindUnused"
	FindReferrers = "FindReferrers"
	DeepScan      = "DeepScan"

	// Prompt operations.
	PromptSelectItem = "PromptSelectItem"

	// Initialization operations.
	Init = "Init"
)

// Operations returns every operation name.
func Operations() []string {
	return []string{Build, FindUnused, FindReferrers, DeepScan, PromptSelectItem, Init}
}
