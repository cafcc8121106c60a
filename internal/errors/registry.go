package errors

// Registered error codes.
const (
	CodeOutsideProvider = "T001"
	CodeInvalidPosition = "T002"
	CodeInvalidDuration = "T003"
	CodeInvalidPort     = "T004"
	CodeConfigRead      = "T005"
	CodeConfigParse     = "T006"
	CodeBadFrame        = "T101"
	CodeBadRequest      = "T102"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	CodeOutsideProvider: {
		Category: CategoryRuntime,
		Message:  "toast: used outside provider",
		Detail:   "Toast and Dismiss were called on a handle that is not bound to a Toaster. Obtain the handle from Toaster.Handle() or toast.Use(ctx) inside a provider's scope.",
	},
	CodeInvalidPosition: {
		Category: CategoryConfig,
		Message:  "Invalid toast position",
		Detail:   "Position must be one of top-left, top-right, top-center, bottom-left, bottom-right, bottom-center.",
	},
	CodeInvalidDuration: {
		Category: CategoryConfig,
		Message:  "Invalid toast duration",
		Detail:   "Duration is given in milliseconds and must not be negative.",
	},
	CodeInvalidPort: {
		Category: CategoryConfig,
		Message:  "Invalid server port",
		Detail:   "Port must be between 1 and 65535.",
	},
	CodeConfigRead: {
		Category: CategoryConfig,
		Message:  "Cannot read config file",
	},
	CodeConfigParse: {
		Category: CategoryConfig,
		Message:  "Cannot parse config file",
		Detail:   "Config files are JSON (.json) or YAML (.yaml, .yml).",
	},
	CodeBadFrame: {
		Category: CategoryProtocol,
		Message:  "Malformed client frame",
		Detail:   `Frames are JSON objects of the form {"type":"dismiss"|"leave","id":<toast id>}.`,
	},
	CodeBadRequest: {
		Category: CategoryProtocol,
		Message:  "Malformed API request",
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
