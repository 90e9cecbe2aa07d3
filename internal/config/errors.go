// SPDX-License-Identifier: EPL-2.0

package config

import "errors"

// ErrInvalidConfig is wrapped by every configuration error.
var ErrInvalidConfig = errors.New("invalid configuration")
