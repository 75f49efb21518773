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

package similarity

import "github.com/gamerec/gamerec/base/floats"

type denseBackend struct {
	rows [][]float32
}

func (d *denseBackend) dim() int {
	return len(d.rows)
}

func (d *denseBackend) row(i int32, dst []float32) {
	copy(dst, d.rows[i])
}

func (d *denseBackend) rowSum(i int32) float32 {
	return floats.Sum(d.rows[i])
}

func (d *denseBackend) addRow(i int32, c float32, dst []float32) {
	floats.MulConstAdd(d.rows[i], c, dst)
}

func (d *denseBackend) normalize() backend {
	normalized := make([][]float32, len(d.rows))
	for i, row := range d.rows {
		normalized[i] = make([]float32, len(row))
		if sum := floats.Sum(row); sum != 0 {
			floats.MulConstTo(row, 1/sum, normalized[i])
		}
	}
	return &denseBackend{rows: normalized}
}
