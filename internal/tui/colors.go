package tui

// Color constants for the tracker TUI theme
const (
	// Base Colors
	ColorAppBackground  = ""        // Use terminal default background
	ColorCardBackground = "#101B2E" // Dark navy
	ColorBorder         = "#3A4A63" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Primary text (field labels, user input, titles)
	ColorSecondaryText = "#AEBBD0" // Secondary text - blue-tinted grey
	ColorDisabledText  = "#6D7A8F" // Disabled/muted text
	ColorPlaceholder   = "#AEBBD0" // Same as secondary
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors (Blue theme)
	ColorAccentMain   = "#2563EB" // Accent elements, active borders
	ColorAccentBright = "#60A5FA" // Hover, highlights, current step

	// State Colors
	ColorError   = "#EF4444" // Validation errors
	ColorSuccess = "#22C55E" // Success, confirmations
	ColorWarning = "#F59E0B" // Warnings
)
