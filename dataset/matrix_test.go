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

package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInteractions(t *testing.T) {
	m := NewInteractions(3, 5)
	assert.Equal(t, 3, m.CountUsers())
	assert.Equal(t, 5, m.CountItems())

	m.Add(0, 3)
	m.Add(0, 1)
	m.Add(0, 3)
	m.Add(2, 4)
	m.Freeze()

	assert.Equal(t, []int32{1, 3}, m.Row(0))
	assert.Empty(t, m.Row(1))
	assert.Equal(t, []int32{4}, m.Row(2))
	assert.True(t, m.RowSet(0).Contains(3))
	assert.False(t, m.RowSet(0).Contains(2))
}

func TestBundles(t *testing.T) {
	b := NewBundles(2)
	assert.Equal(t, 2, b.Count())
	b.Add(1, 2)
	b.Add(1, 0)
	b.Add(1, 2)
	b.Freeze()
	assert.Empty(t, b.Items(0))
	assert.Equal(t, []int32{0, 2}, b.Items(1))
}
