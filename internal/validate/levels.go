// SPDX-License-Identifier: MIT

package validate

import "strings"

// LogLevels are the accepted log.level values.
var LogLevels = []string{"trace", "debug", "info", "warn", "error"}

// LogLevel requires one of LogLevels, case-insensitively.
func (v *Validator) LogLevel(field, level string) {
	v.OneOf(field, strings.ToLower(strings.TrimSpace(level)), LogLevels...)
}
