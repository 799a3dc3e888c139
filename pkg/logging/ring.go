// Copyright 2025 The BrewOS Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logging holds log plumbing around the zerolog logger.
package logging

import (
	"strings"
	"sync"
)

// RingWriter is a destination of the zerolog logger that keeps the
// most recent lines in memory so they can be served for diagnostics.
type RingWriter struct {
	mutex    sync.RWMutex
	lines    []string
	next     int
	capacity int
}

// NewRingWriter creates a ring writer keeping the given number of lines.
func NewRingWriter(capacity int) *RingWriter {
	if capacity < 1 {
		capacity = 1
	}
	return &RingWriter{
		capacity: capacity,
	}
}

// Write a single log line into the ring.
func (w *RingWriter) Write(p []byte) (int, error) {
	line := strings.TrimRight(string(p), "\n")
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if len(w.lines) < w.capacity {
		w.lines = append(w.lines, line)
	} else {
		w.lines[w.next] = line
		w.next = (w.next + 1) % w.capacity
	}
	return len(p), nil
}

// Lines returns the retained log lines, oldest first.
func (w *RingWriter) Lines() []string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	result := make([]string, 0, len(w.lines))
	result = append(result, w.lines[w.next:]...)
	result = append(result, w.lines[:w.next]...)
	return result
}
