// SPDX-License-Identifier: EPL-2.0

package logger

import "fmt"

func sprintf(message string, args ...any) string {
	if len(args) == 0 {
		return message
	}

	return fmt.Sprintf(message, args...)
}
