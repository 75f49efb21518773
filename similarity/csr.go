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

type csrBackend struct {
	indptr  []int
	indices []int32
	values  []float32
	n       int
}

func (c *csrBackend) dim() int {
	return c.n
}

func (c *csrBackend) row(i int32, dst []float32) {
	for p := c.indptr[i]; p < c.indptr[i+1]; p++ {
		dst[c.indices[p]] = c.values[p]
	}
}

func (c *csrBackend) rowSum(i int32) (sum float32) {
	for p := c.indptr[i]; p < c.indptr[i+1]; p++ {
		sum += c.values[p]
	}
	return
}

func (c *csrBackend) addRow(i int32, mul float32, dst []float32) {
	for p := c.indptr[i]; p < c.indptr[i+1]; p++ {
		dst[c.indices[p]] += c.values[p] * mul
	}
}

func (c *csrBackend) normalize() backend {
	values := make([]float32, len(c.values))
	copy(values, c.values)
	for i := 0; i < c.n; i++ {
		if sum := c.rowSum(int32(i)); sum != 0 {
			for p := c.indptr[i]; p < c.indptr[i+1]; p++ {
				values[p] /= sum
			}
		}
	}
	return &csrBackend{indptr: c.indptr, indices: c.indices, values: values, n: c.n}
}
