// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client runs the notes sync client: one sync pass at start-up,
// then the periodic sync until the process is asked to stop. Progress is
// printed to the terminal as it arrives.
package client
