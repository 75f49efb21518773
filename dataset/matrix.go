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
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// Interactions is a sparse boolean user-item matrix stored as per-user lists
// of owned item indices. Rows are sorted and deduplicated once Freeze is
// called; a row with no entries denotes a cold-start user.
type Interactions struct {
	rows     [][]int32
	numItems int
}

func NewInteractions(numUsers, numItems int) *Interactions {
	return &Interactions{
		rows:     make([][]int32, numUsers),
		numItems: numItems,
	}
}

func (m *Interactions) CountUsers() int {
	return len(m.rows)
}

func (m *Interactions) CountItems() int {
	return m.numItems
}

// Add records that userIndex owns itemIndex. Indices are not validated here,
// the loader validates against the catalogs first.
func (m *Interactions) Add(userIndex, itemIndex int32) {
	m.rows[userIndex] = append(m.rows[userIndex], itemIndex)
}

// Freeze sorts and deduplicates all rows. Call once after loading, before
// any concurrent reads.
func (m *Interactions) Freeze() {
	for i, row := range m.rows {
		if len(row) < 2 {
			continue
		}
		sort.Slice(row, func(a, b int) bool { return row[a] < row[b] })
		deduped := row[:1]
		for _, v := range row[1:] {
			if v != deduped[len(deduped)-1] {
				deduped = append(deduped, v)
			}
		}
		m.rows[i] = deduped
	}
}

// Row returns the sorted item indices owned by userIndex. The returned slice
// is shared and must not be mutated.
func (m *Interactions) Row(userIndex int32) []int32 {
	return m.rows[userIndex]
}

// RowSet returns the owned item indices of userIndex as a set.
func (m *Interactions) RowSet(userIndex int32) mapset.Set[int32] {
	return mapset.NewThreadUnsafeSet(m.rows[userIndex]...)
}

// Bundles is a sparse bundle-item membership matrix stored as per-bundle
// lists of item indices.
type Bundles struct {
	items [][]int32
}

func NewBundles(numBundles int) *Bundles {
	return &Bundles{items: make([][]int32, numBundles)}
}

func (b *Bundles) Count() int {
	return len(b.items)
}

// Add records that bundleIndex contains itemIndex.
func (b *Bundles) Add(bundleIndex, itemIndex int32) {
	b.items[bundleIndex] = append(b.items[bundleIndex], itemIndex)
}

// Freeze sorts and deduplicates all membership lists.
func (b *Bundles) Freeze() {
	m := Interactions{rows: b.items}
	m.Freeze()
}

// Items returns the item indices of bundleIndex. A bundle with no items is
// valid here but carries no signal and is skipped by recommenders.
func (b *Bundles) Items(bundleIndex int32) []int32 {
	return b.items[bundleIndex]
}
