// Package emoji provides symbol constants for CLI output.
package emoji

// Symbol constants give status lines a consistent look across commands.
const (
	// Success marks a completed check or a written file.
	Success = "✓"

	// Error marks a failed check.
	Error = "✗"

	// Warning marks a non-fatal issue such as unmatched codes.
	Warning = "!"

	// Info marks informational lines.
	Info = "i"
)

// Status returns the success or error symbol for ok.
func Status(ok bool) string {
	if ok {
		return Success
	}
	return Error
}
