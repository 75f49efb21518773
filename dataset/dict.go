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

import "strconv"

// Dict is a bidirectional mapping between external identifiers and dense
// internal indices. Both directions are kept in sync so reverse lookup is
// constant time. Indices are contiguous in [0, Count()).
type Dict struct {
	si map[string]int32
	is []string
}

func NewDict() *Dict {
	return &Dict{si: map[string]int32{}}
}

// NewIdentityDict creates a dict mapping "0".."n-1" to 0..n-1. It is used to
// synthesize a catalog when artifacts come without one.
func NewIdentityDict(n int) *Dict {
	d := NewDict()
	for i := 0; i < n; i++ {
		d.Add(strconv.Itoa(i))
	}
	return d
}

func (d *Dict) Count() int {
	return len(d.is)
}

// Add returns the index of s, assigning the next free index if s is unseen.
func (d *Dict) Add(s string) int32 {
	if y, ok := d.si[s]; ok {
		return y
	}
	y := int32(len(d.is))
	d.si[s] = y
	d.is = append(d.is, s)
	return y
}

// Id looks up the index of s without modifying the dict.
func (d *Dict) Id(s string) (int32, bool) {
	y, ok := d.si[s]
	return y, ok
}

// String looks up the identifier at index id.
func (d *Dict) String(id int32) (string, bool) {
	if id < 0 || int(id) >= len(d.is) {
		return "", false
	}
	return d.is[id], true
}

// Strings returns all identifiers in index order.
func (d *Dict) Strings() []string {
	return d.is
}
