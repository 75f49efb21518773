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

package artifact

import "fmt"

// ConfigurationError means the supplied artifacts are malformed or
// insufficient to build a usable store. It is fatal: no partial store is
// returned.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid artifacts: " + e.Reason
}

func configErrorf(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// ShapeMismatchError records a similarity or bundle matrix that failed the
// dimension check. It is recovered locally: the artifact is dropped and
// loading continues, unless nothing usable remains.
type ShapeMismatchError struct {
	Name string
	Rows int
	Cols int
	Want int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("matrix %q has shape %dx%d, want %dx%d", e.Name, e.Rows, e.Cols, e.Want, e.Want)
}
