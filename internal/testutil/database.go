//go:build integration

package testutil

import (
	"strconv"
	"strings"
	"sync/atomic"
)

// maxDBNamePrefix keeps sanitized names, plus the uniqueness suffix, under MongoDB's 63 byte limit.
const maxDBNamePrefix = 48

var dbSeq atomic.Int64

// invalidDBNameChars are the characters MongoDB rejects in database names.
var invalidDBNameChars = strings.NewReplacer(
	"/", "_", `\`, "_", ".", "_", " ", "_", `"`, "_", "$", "_",
	"*", "_", "<", "_", ">", "_", ":", "_", "|", "_", "?", "_",
)

// SanitizeDBName turns a test name into a unique, valid MongoDB database name.
func SanitizeDBName(testName string) string {
	name := invalidDBNameChars.Replace(testName)
	if len(name) > maxDBNamePrefix {
		name = name[:maxDBNamePrefix]
	}
	return name + "_" + strconv.FormatInt(dbSeq.Add(1), 36)
}
