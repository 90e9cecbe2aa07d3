// SPDX-License-Identifier: EPL-2.0

package project

import "errors"

var (
	// ErrLayerNotFound indicates an operation on a layer id the store does not hold.
	ErrLayerNotFound = errors.New("layer not found")

	// ErrProjectNotFound indicates a lookup of a project that was never created.
	ErrProjectNotFound = errors.New("project not found")

	// ErrLayerLimit indicates an insert into a store already at its layer cap.
	ErrLayerLimit = errors.New("project layer limit reached")

	ErrInvalidVolume      = errors.New("volume must be a finite number")
	ErrInvalidOffset      = errors.New("offset out of range")
	ErrInvalidLayerID     = errors.New("invalid layer id")
	ErrInvalidProjectName = errors.New("project name must not be empty")
	ErrNoAudio            = errors.New("layer has no audio")
)
