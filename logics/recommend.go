// Copyright 2026 gamerec Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logics implements the recommenders. Each recommender is a pure
// function of an immutable artifact store plus per-call arguments, so all of
// them are safe for concurrent use.
package logics

import "fmt"

// Score is a recommended item index with its score, the only record the
// engine hands to callers.
type Score struct {
	Index int32   `json:"index"`
	Score float32 `json:"score"`
}

// OutOfRangeError reports a user, item or bundle index outside the known
// catalog. It is returned per call and never corrupts subsequent calls.
type OutOfRangeError struct {
	Kind  string
	Index int32
	Count int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s index %d out of range [0, %d)", e.Kind, e.Index, e.Count)
}

func checkRange(kind string, index int32, count int) error {
	if index < 0 || int(index) >= count {
		return &OutOfRangeError{Kind: kind, Index: index, Count: count}
	}
	return nil
}

// clamp limits k to the number of candidates. Unlike a bad index this is a
// documented normalization, not an error.
func clamp(k, n int) int {
	if k > n {
		return n
	}
	return k
}
