package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Usage errors (E100-E199)

	"E101": {
		Category:   CategoryUsage,
		Message:    "effect created outside an owning scope",
		Detail:     "Watch and Derive must be called while a component construction scope is current, so the owner can dispose the effect on unmount.",
		Suggestion: "Wrap effect creation in scope.Run, or keep the runtime's root scope alive.",
	},
	"E102": {
		Category:   CategoryUsage,
		Message:    "duplicate key in reconciliation pass",
		Detail:     "Keys must be unique within one pass. A duplicate is rejected immediately rather than silently dropping an item.",
		Suggestion: "Make keyFn return a unique key per item, e.g. an ID field instead of an index.",
	},
	"E103": {
		Category:   CategoryUsage,
		Message:    "malformed patch",
		Detail:     "Patch keys must name existing fields (or map keys) with assignable values, and the store value must be a struct or map.",
		Suggestion: "Check the partial's keys and value types against the store's value type.",
	},
	"E105": {
		Category:   CategoryUsage,
		Message:    "scope already disposed",
		Detail:     "New effects and child scopes cannot be created on a scope that has been disposed; its owner has already run cleanups.",
		Suggestion: "Create the effect before disposing the scope, or attach it to a still-live ancestor.",
	},

	// Reconciliation misuse (E200-E299)

	"E201": {
		Category:   CategoryReconcile,
		Message:    "render returned no node",
		Detail:     "renderFn must return an insertable node; nil cannot be attached.",
		Suggestion: "Return a non-nil node for every item, or filter the item out before reconciling.",
	},
	"E202": {
		Category:   CategoryReconcile,
		Message:    "reconcile target missing",
		Detail:     "A bound list or swap needs a container to apply operations to.",
	},
}

// Template returns the registered template for a code, if any.
func Template(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
