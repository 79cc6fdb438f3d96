// =============================================================================
// Contentful CSV Importer - File Manager Utility
// =============================================================================
//
// This module provides the small amount of file handling the importer needs:
//   - Naming the intermediate import file (randomized so that concurrent
//     runs in the same directory never collide)
//   - Existence and readability checks for the input file
//   - Best-effort removal of the intermediate file
//
// LIFECYCLE OF THE INTERMEDIATE FILE:
//   - Written once, after every row has been converted
//   - Kept when "previewfile" is set, so the user can inspect it
//   - Otherwise removed after the importer exits, on success and failure
//
// =============================================================================

package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultOutputNameFormat is used when no format is configured.
const DefaultOutputNameFormat = "contentful-import-{uuid}.json"

// =============================================================================
// FILE NAMING
// =============================================================================

// GenerateOutputFileName generates a file name from a format string.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {time}      - Current time (HHMMSS)
//               {<key>}     - Any key from params (e.g. {space}, {env})
//   - params: A map of placeholder values.
//
// RETURNS:
//   - The generated file name, always ending in ".json".
//
// EXAMPLE:
//   format: "{space}_{timestamp}_{uuid}.json"
//   params: {"space": "sp1"}
//   output: "sp1_20240115_143022_a1b2c3d4-e5f6-7890-abcd-ef1234567890.json"
func GenerateOutputFileName(format string, params map[string]string) string {
	if format == "" {
		format = DefaultOutputNameFormat
	}

	now := time.Now()

	// Custom params are listed first and win over the built-in placeholders.
	pairs := make([]string, 0, 8+2*len(params))
	for key, value := range params {
		pairs = append(pairs, "{"+key+"}", value)
	}
	pairs = append(pairs,
		"{uuid}", uuid.New().String(),
		"{timestamp}", now.Format("20060102_150405"),
		"{date}", now.Format("20060102"),
		"{time}", now.Format("150405"),
	)

	result := strings.NewReplacer(pairs...).Replace(format)

	if !strings.HasSuffix(strings.ToLower(result), ".json") {
		result += ".json"
	}

	return result
}

// =============================================================================
// FILE CHECKS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

// CheckReadable returns an error when path is missing, is a directory, or
// cannot be opened for reading.
func CheckReadable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}

// =============================================================================
// CLEANUP
// =============================================================================

// RemoveQuietly deletes path and ignores every error, including the file
// already being gone.
func RemoveQuietly(path string) {
	if path == "" {
		return
	}
	_ = os.Remove(path)
}
