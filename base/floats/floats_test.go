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

package floats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSum(t *testing.T) {
	assert.Equal(t, float32(6), Sum([]float32{1, 2, 3}))
	assert.Equal(t, float32(0), Sum(nil))
}

func TestMulConst(t *testing.T) {
	a := []float32{1, 2, 3}
	MulConst(a, 2)
	assert.Equal(t, []float32{2, 4, 6}, a)
}

func TestMulConstTo(t *testing.T) {
	dst := make([]float32, 3)
	MulConstTo([]float32{1, 2, 3}, 3, dst)
	assert.Equal(t, []float32{3, 6, 9}, dst)
	assert.Panics(t, func() { MulConstTo([]float32{1}, 3, dst) })
}

func TestMulConstAdd(t *testing.T) {
	dst := []float32{1, 1, 1}
	MulConstAdd([]float32{1, 2, 3}, 2, dst)
	assert.Equal(t, []float32{3, 5, 7}, dst)
	assert.Panics(t, func() { MulConstAdd([]float32{1}, 2, dst) })
}

func TestMulConstAddTo(t *testing.T) {
	dst := make([]float32, 3)
	MulConstAddTo([]float32{1, 2, 3}, 2, []float32{1, 1, 1}, dst)
	assert.Equal(t, []float32{3, 5, 7}, dst)
	assert.Panics(t, func() { MulConstAddTo([]float32{1}, 2, []float32{1, 1, 1}, dst) })
}
