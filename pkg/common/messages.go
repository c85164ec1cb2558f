// Package common provides logging helpers, message constants and small
// byte-reading utilities shared by the RMENU tooling.
package common

import (
	"fmt"
	"log"
)

// Global variable to control debug output
var VerboseMode bool = false

// SetVerboseMode enables or disables verbose/debug output
func SetVerboseMode(verbose bool) {
	VerboseMode = verbose
}

// Error messages
const (
	ErrFailedToOpenImage      = "failed to open disc image"
	ErrFailedToReadDirectory  = "failed to read directory"
	ErrFailedToRenameDir      = "failed to rename directory"
	ErrFailedToRollbackRename = "failed to roll back directory rename"
	ErrFailedToWriteList      = "failed to write list file"
	ErrFailedToLoadTable      = "failed to load signature table"
	ErrFailedToCopyMenu       = "failed to copy menu binary"
	ErrAuthoringToolFailed    = "image authoring tool failed"
)

// Info messages
const (
	InfoSubdirsFound       = "%d subdirs found"
	InfoImagesFound        = "%d image files found"
	InfoRecordsExtracted   = "%d image data records extracted"
	InfoListWritten        = "List file written: %s (%d entries)"
	InfoDirectoryRenamed   = "Renamed %s -> %s"
	InfoNothingToRename    = "All directories already use canonical names"
	InfoMenuBinarySelected = "Using menu binary %s"
	InfoRunningTool        = "Running %s %v"
	InfoImageAuthored      = "Menu image written: %s"
)

// Debug messages
const (
	DebugProbeOffset      = "[%s] probing %s at offset %d (0x%X)"
	DebugSignatureFound   = "[%s] %s type %d: %q @ %s"
	DebugSignatureMissing = "[%s] no signature found for %s"
	DebugFieldRead        = "[%s] %s @ %s, %d bytes: %q"
	DebugFieldAbsent      = "[%s] %s not supported on this image type"
	DebugCandidate        = "%s: %s [%s]"
	DebugSkippedEntry     = "Skipping %s: %s"
)

// Warning messages
const (
	WarnNoImageInDir     = "%s [No valid image files found]"
	WarnFieldUndecodable = "[%s] unable to extract disc %s"
	WarnTitleKeptRaw     = "[%s] unable to decode disc %s, keeping raw bytes"
	WarnNonCanonicalDir  = "Directory %q is outside the canonical id space; the menu may not address it"
	WarnListUnreliable   = "Generated list contains non-canonical ids, run the rename command first"
	WarnNoSignature      = "%s: no Saturn signature found in %s"
	WarnDuplicateImage   = "%s holds the same disc as %s (header %016x)"
)

// LogInfo logs an informational message
func LogInfo(message string, args ...interface{}) {
	if len(args) > 0 {
		log.Printf("[INFO] "+message, args...)
	} else {
		log.Printf("[INFO] %s", message)
	}
}

// LogWarn logs a warning message
func LogWarn(message string, args ...interface{}) {
	if len(args) > 0 {
		log.Printf("[WARN] "+message, args...)
	} else {
		log.Printf("[WARN] %s", message)
	}
}

// LogError logs an error message
func LogError(message string, args ...interface{}) {
	if len(args) > 0 {
		log.Printf("[ERROR] "+message, args...)
	} else {
		log.Printf("[ERROR] %s", message)
	}
}

// LogDebug logs a debug message (only if VerboseMode is enabled)
func LogDebug(message string, args ...interface{}) {
	if !VerboseMode {
		return
	}

	if len(args) > 0 {
		log.Printf("[DEBUG] "+message, args...)
	} else {
		log.Printf("[DEBUG] %s", message)
	}
}

// FormatError creates a formatted error with additional context
func FormatError(baseMessage string, details interface{}) error {
	if err, ok := details.(error); ok {
		return fmt.Errorf("%s: %w", baseMessage, err)
	}
	return fmt.Errorf("%s: %v", baseMessage, details)
}

// FormatErrorString creates a formatted error with string details
func FormatErrorString(baseMessage, details string, args ...interface{}) error {
	if len(args) > 0 {
		return fmt.Errorf("%s: "+details, append([]interface{}{baseMessage}, args...)...)
	}
	return fmt.Errorf("%s: %s", baseMessage, details)
}
