// SPDX-License-Identifier: Apache-2.0

// Package app wires the glucose console's components into a single process
// lifecycle: authenticate, poll in the background, render in the terminal,
// and shut everything down deterministically on interrupt.
package app
