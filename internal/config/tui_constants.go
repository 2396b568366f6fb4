package config

// Layout constants.
const (
	// CompactModeThreshold hides descriptions below this width.
	CompactModeThreshold = 60

	// TargetNameWidth is the preferred width for project names.
	TargetNameWidth = 30

	// MinNameWidth is the minimum width for project names.
	MinNameWidth = 10

	// LoadMoreThreshold requests the next page when the cursor is this
	// close to the end of the list.
	LoadMoreThreshold = 2
)

// Display limits.
const (
	// MaxVisibleRows limits rows shown per list before scrolling.
	MaxVisibleRows = 15

	// MaxMembersDisplayed limits inline team member display.
	MaxMembersDisplayed = 3

	// TruncationSuffix appended to truncated strings.
	TruncationSuffix = "..."
)

// Input constraints.
const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500
	MaxEmailLength       = 120
	MaxDisplayNameLength = 40
)
