package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Compile Errors (E001-E019)
	// ============================================

	"E001": {
		Category: CategoryCompile,
		Message:  "Syntax error",
		Detail:   "The source could not be parsed. The whole file fails to compile; there is no partial output.",
	},
	"E002": {
		Category: CategoryCompile,
		Message:  "Mismatched closing tag",
		Detail:   "Every element must be closed by an end tag with the same name, or be written as a self-closing element.",
	},
	"E003": {
		Category: CategoryCompile,
		Message:  "Unknown element tag",
		Detail:   "Lowercase tags must be HTML or SVG elements, or custom element names containing a hyphen. Components start with an uppercase letter.",
	},
	"E004": {
		Category: CategoryCompile,
		Message:  "Unknown builtin attribute",
		Detail:   "Supported builtin attributes are @rendering, @escaping, @caching and @key.",
	},
	"E005": {
		Category: CategoryCompile,
		Message:  "Invalid directive value",
		Detail:   "@rendering accepts .ssr, .csr or .csz. @escaping accepts .html or .raw.",
	},
	"E006": {
		Category: CategoryCompile,
		Message:  "Missing island import",
		Detail:   "A component rendered with @rendering={.csr} must be declared with zx.Import in the same file.",
	},
	"E007": {
		Category: CategoryCompile,
		Message:  "Invalid island",
		Detail:   "Externally rendered components cannot receive child content.",
	},
	"E008": {
		Category: CategoryCompile,
		Message:  "Unterminated construct",
		Detail:   "The source ended before an element, string or expression was closed.",
	},
	"E009": {
		Category: CategoryCompile,
		Message:  "Generated code is invalid",
		Detail:   "The generated Go code could not be formatted. This usually points at a host expression that is not valid Go.",
	},

	// ============================================
	// Runtime Errors (E020-E039)
	// ============================================

	"E020": {
		Category: CategoryRuntime,
		Message:  "Component evaluation failed",
		Detail:   "A component function returned an error while rendering.",
	},
	"E021": {
		Category: CategoryRuntime,
		Message:  "Invalid node operation",
		Detail:   "The UI backend rejected an operation, for example appending a child to a text node. The patch batch was aborted.",
	},
	"E022": {
		Category: CategoryRuntime,
		Message:  "Event handler not found",
		Detail:   "No handler is registered for this element and event type.",
	},
	"E023": {
		Category: CategoryRuntime,
		Message:  "Invalid component function",
		Detail:   "zx.Lazy was given a value that is not a supported component function.",
	},

	// ============================================
	// Hydration Errors (E040-E059)
	// ============================================

	"E040": {
		Category: CategoryHydration,
		Message:  "Container not found",
		Detail:   "The mount container or island marker could not be located in the live tree.",
	},

	// ============================================
	// Protocol Errors (E060-E079)
	// ============================================

	"E060": {
		Category: CategoryProtocol,
		Message:  "Malformed operation frame",
		Detail:   "An operation or event frame could not be decoded.",
	},

	// ============================================
	// Config Errors (E120-E139)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid zx.json",
		Detail:   "The configuration file could not be parsed.",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration field has a value outside its allowed range.",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Project root not found",
		Detail:   "No zx.json was found in the directory or any of its parents.",
	},

	// ============================================
	// CLI Errors (E140-E159)
	// ============================================

	"E140": {
		Category: CategoryCLI,
		Message:  "Build failed",
		Detail:   "One or more source files failed to compile.",
	},
	"E141": {
		Category: CategoryCLI,
		Message:  "Source map lookup failed",
		Detail:   "The generated position could not be mapped back to a source position.",
	},
	"E142": {
		Category: CategoryCLI,
		Message:  "Publish failed",
		Detail:   "Source maps could not be uploaded to the configured bucket.",
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
