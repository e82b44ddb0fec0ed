package errors

// Registered codes.
const (
	CodeInvalidElementType = "V001"
	CodeInvalidChild       = "V002"
	CodeInvalidHookCall    = "V003"
	CodeContainerMissing   = "V004"

	CodeMissingKey   = "V010"
	CodePartialKey   = "V011"
	CodeDuplicateKey = "V012"

	CodeHookCountMismatch = "V020"
	CodeExcessiveRerender = "V021"
	CodeCrossComponentSet = "V022"
	CodeSetAfterDisposal  = "V023"
	CodeUpdateFailed      = "V024"

	CodeInvalidIndex = "V030"

	CodeConfigNotFound = "V040"
	CodeConfigInvalid  = "V041"
	CodeConfigFormat   = "V042"

	CodeSnapshotTarget = "V050"
	CodeSnapshotWrite  = "V051"

	CodeUnknownApp    = "V060"
	CodeUnknownAction = "V061"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Severity Severity
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// API misuse (V001-V009)
	// ============================================

	CodeInvalidElementType: {
		Category: CategoryElement,
		Severity: SeverityFatal,
		Message:  "Invalid element type",
		Detail:   "Element types must be a tag string or a component function.",
	},
	CodeInvalidChild: {
		Category: CategoryElement,
		Severity: SeverityFatal,
		Message:  "Invalid child",
		Detail:   "Children must be elements, slices of elements, strings, numbers, booleans or nil.",
	},
	CodeInvalidHookCall: {
		Category: CategoryHooks,
		Severity: SeverityFatal,
		Message:  "Invalid hook call",
		Detail:   "Hooks can only be called inside the body of a component function while it renders.",
	},
	CodeContainerMissing: {
		Category: CategoryRender,
		Severity: SeverityFatal,
		Message:  "Render container missing",
		Detail:   "The container passed to CreateRoot is nil.",
	},

	// ============================================
	// Keys (V010-V019)
	// ============================================

	CodeMissingKey: {
		Category: CategoryKeys,
		Severity: SeverityWarning,
		Message:  "Missing key in list",
		Detail:   "All elements in a list should have a unique key prop assigned to them. Not assigning a key prop can lead to unexpected behaviour and degraded performance.",
	},
	CodePartialKey: {
		Category: CategoryKeys,
		Severity: SeverityWarning,
		Message:  "Partially keyed list",
		Detail:   "All elements in a list should have a unique key prop assigned to them. Assigning keys to only some elements in a list can lead to unexpected behaviour.",
	},
	CodeDuplicateKey: {
		Category: CategoryKeys,
		Severity: SeverityWarning,
		Message:  "Duplicate key in list",
		Detail:   "All elements in a list should have a unique key prop assigned to them.",
	},

	// ============================================
	// Hooks and render loop (V020-V029)
	// ============================================

	CodeHookCountMismatch: {
		Category: CategoryHooks,
		Severity: SeverityError,
		Message:  "Hook count changed between renders",
		Detail:   "Hooks must be called unconditionally and in the same order on every render.",
	},
	CodeExcessiveRerender: {
		Category: CategoryRender,
		Severity: SeverityError,
		Message:  "Too many re-renders",
		Detail:   "A state setter is called on every render, causing an infinite loop. Setting state while rendering should only be done conditionally.",
	},
	CodeCrossComponentSet: {
		Category: CategoryHooks,
		Severity: SeverityError,
		Message:  "State set from another component during render",
		Detail:   "While rendering, state setter functions can only be called from the component they belong to.",
	},
	CodeSetAfterDisposal: {
		Category: CategoryHooks,
		Severity: SeverityWarning,
		Message:  "State set on an unmounted component",
		Detail:   "The component owning this state has been removed from the tree; the update is ignored.",
	},
	CodeUpdateFailed: {
		Category: CategoryRender,
		Severity: SeverityError,
		Message:  "State update failed",
		Detail:   "Re-rendering the component after a state change failed.",
	},

	// ============================================
	// Backend (V030-V039)
	// ============================================

	CodeInvalidIndex: {
		Category: CategoryBackend,
		Severity: SeverityFatal,
		Message:  "Invalid index",
		Detail:   "The insertion index is past the end of the parent's children.",
	},

	// ============================================
	// Configuration (V040-V049)
	// ============================================

	CodeConfigNotFound: {
		Category: CategoryConfig,
		Severity: SeverityFatal,
		Message:  "Configuration file not found",
		Detail:   "No vtree.json, vtree.yaml or vtree.toml was found.",
	},
	CodeConfigInvalid: {
		Category: CategoryConfig,
		Severity: SeverityFatal,
		Message:  "Invalid configuration",
		Detail:   "The configuration file contains invalid values.",
	},
	CodeConfigFormat: {
		Category: CategoryConfig,
		Severity: SeverityFatal,
		Message:  "Unreadable configuration",
		Detail:   "The configuration file could not be read or parsed.",
	},

	// ============================================
	// Snapshots (V050-V059)
	// ============================================

	CodeSnapshotTarget: {
		Category: CategorySnapshot,
		Severity: SeverityFatal,
		Message:  "Invalid snapshot target",
		Detail:   "Snapshot targets are a file path or an s3://bucket/prefix URL.",
	},
	CodeSnapshotWrite: {
		Category: CategorySnapshot,
		Severity: SeverityFatal,
		Message:  "Snapshot write failed",
		Detail:   "The rendered snapshot could not be stored.",
	},

	// ============================================
	// CLI (V060-V069)
	// ============================================

	CodeUnknownApp: {
		Category: CategoryCLI,
		Severity: SeverityFatal,
		Message:  "Unknown app",
		Detail:   "The requested demo app does not exist. Run 'vtree apps' to list them.",
	},
	CodeUnknownAction: {
		Category: CategoryCLI,
		Severity: SeverityFatal,
		Message:  "Unknown action",
		Detail:   "The app has no action with this name, or it is not mounted yet.",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
