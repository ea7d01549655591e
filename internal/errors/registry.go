package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Config Errors (F100-F199)
	// ============================================

	"F100": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "folio looks for folio.yaml in the working directory unless --config is given.",
		DocURL:   "https://folio.dev/docs/errors/F100",
	},
	"F101": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "folio.yaml could not be parsed as YAML or did not match the expected schema.",
		DocURL:   "https://folio.dev/docs/errors/F101",
	},
	"F102": {
		Category: CategoryConfig,
		Message:  "Invalid environment override",
		Detail:   "A FOLIO_* environment variable could not be applied to the configuration.",
		DocURL:   "https://folio.dev/docs/errors/F102",
	},
	"F103": {
		Category: CategoryConfig,
		Message:  "Invalid server setting",
		Detail:   "The server section contains a value outside its allowed range.",
		DocURL:   "https://folio.dev/docs/errors/F103",
	},
	"F104": {
		Category: CategoryConfig,
		Message:  "Invalid page timing",
		Detail:   "Durations and thresholds under page: must be positive; thresholds must lie in [0, 1].",
		DocURL:   "https://folio.dev/docs/errors/F104",
	},
	"F105": {
		Category: CategoryConfig,
		Message:  "Failed to write config file",
		DocURL:   "https://folio.dev/docs/errors/F105",
	},

	// ============================================
	// Content Errors (F200-F299)
	// ============================================

	"F200": {
		Category: CategoryContent,
		Message:  "Missing owner name",
		Detail:   "content.owner.name is shown in the hero and the page title and cannot be empty.",
		DocURL:   "https://folio.dev/docs/errors/F200",
	},
	"F201": {
		Category: CategoryContent,
		Message:  "Duplicate section id",
		Detail:   "Section ids double as anchor targets (#id) and must be unique.",
		DocURL:   "https://folio.dev/docs/errors/F201",
	},
	"F202": {
		Category: CategoryContent,
		Message:  "Invalid section id",
		Detail:   "Section ids may contain letters, digits, '-' and '_' only.",
		DocURL:   "https://folio.dev/docs/errors/F202",
	},
	"F203": {
		Category: CategoryContent,
		Message:  "Failed to render markdown",
		DocURL:   "https://folio.dev/docs/errors/F203",
	},

	// ============================================
	// Server Errors (F300-F399)
	// ============================================

	"F300": {
		Category: CategoryServer,
		Message:  "Failed to render page",
		DocURL:   "https://folio.dev/docs/errors/F300",
	},
	"F301": {
		Category: CategoryServer,
		Message:  "Failed to start server",
		Detail:   "The HTTP listener could not be started. The address may already be in use.",
		DocURL:   "https://folio.dev/docs/errors/F301",
	},
	"F302": {
		Category: CategoryServer,
		Message:  "Failed to watch config file",
		DocURL:   "https://folio.dev/docs/errors/F302",
	},

	// ============================================
	// Publish Errors (F400-F499)
	// ============================================

	"F400": {
		Category: CategoryPublish,
		Message:  "Failed to export site",
		DocURL:   "https://folio.dev/docs/errors/F400",
	},
	"F401": {
		Category: CategoryPublish,
		Message:  "Missing bucket",
		Detail:   "Publishing needs a target bucket, either publish.bucket in folio.yaml or --bucket.",
		DocURL:   "https://folio.dev/docs/errors/F401",
	},
	"F402": {
		Category: CategoryPublish,
		Message:  "Upload failed",
		DocURL:   "https://folio.dev/docs/errors/F402",
	},
	"F403": {
		Category: CategoryPublish,
		Message:  "Invalid exclude pattern",
		DocURL:   "https://folio.dev/docs/errors/F403",
	},

	// ============================================
	// CLI Errors (F500-F599)
	// ============================================

	"F500": {
		Category: CategoryCLI,
		Message:  "Config file already exists",
		Detail:   "folio init refuses to overwrite an existing folio.yaml.",
		DocURL:   "https://folio.dev/docs/errors/F500",
	},
}

// Lookup returns the template for a code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
