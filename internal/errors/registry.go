package errors

// Registered error codes.
const (
	CodeInvalidNode   = "V100"
	CodeStaleRef      = "V101"
	CodeDetached      = "V102"
	CodeConfigInvalid = "V200"
	CodeConfigRead    = "V201"
	CodeSnapshot      = "V300"
	CodeSnapshotMiss  = "V301"
)

// Template defines a registered error type.
type Template struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	CodeInvalidNode: {
		Category: CategoryInput,
		Message:  "Invalid vnode",
	},
	CodeStaleRef: {
		Category: CategoryReconcile,
		Message:  "Stale ref",
		Detail:   "The ref was unmounted or belongs to another reconciler.",
	},
	CodeDetached: {
		Category: CategoryReconcile,
		Message:  "Anchor node is detached",
		Detail:   "The native node used as an insertion anchor has no parent.",
	},
	CodeConfigInvalid: {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
	},
	CodeConfigRead: {
		Category: CategoryConfig,
		Message:  "Configuration file unreadable",
	},
	CodeSnapshot: {
		Category: CategoryStorage,
		Message:  "Snapshot storage failed",
	},
	CodeSnapshotMiss: {
		Category: CategoryStorage,
		Message:  "Snapshot not found",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}
