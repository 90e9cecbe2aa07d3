// SPDX-License-Identifier: EPL-2.0

// Package project keeps the in-memory state of every project: a Registry
// of named Stores, each an insertion-ordered list of Layers.
//
// A Layer's audio is canonical PCM and is never modified after insertion.
// Its presentation state (volume, visibility, offset, name) is changed
// through the Store, which serializes mutations per project. Different
// projects never block each other.
//
// Nothing here is persisted; state lives as long as the process.
package project
