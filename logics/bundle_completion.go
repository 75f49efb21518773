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

package logics

import (
	"sort"

	"github.com/gamerec/gamerec/artifact"
	"github.com/gamerec/gamerec/base/heap"
)

// BundleCompletion recommends items that complete partially owned bundles.
// Partial ownership is a strong purchase signal: a user owning 2 of 5 items
// in a bundle is likely to buy the remaining 3.
type BundleCompletion struct {
	store *artifact.Store
}

func NewBundleCompletion(store *artifact.Store) *BundleCompletion {
	return &BundleCompletion{store: store}
}

// PartialBundle describes a bundle the user owns a strict subset of.
type PartialBundle struct {
	BundleIndex    int32    `json:"bundle_index"`
	BundleId       string   `json:"bundle_id"`
	OwnershipRatio float32  `json:"ownership_ratio"`
	OwnedCount     int      `json:"owned_count"`
	MissingIds     []string `json:"missing_ids"`
	MissingIndices []int32  `json:"missing_indices"`
}

// GetPartialBundles finds the bundles whose ownership ratio lies strictly
// between 0 and 1, ordered by descending ratio. Fully owned and fully
// unowned bundles carry no completion signal and are excluded, as are empty
// bundles.
func (r *BundleCompletion) GetPartialBundles(userIndex int32) ([]PartialBundle, error) {
	if err := checkRange("user", userIndex, r.store.NumUsers()); err != nil {
		return nil, err
	}
	owned := r.store.Interactions.RowSet(userIndex)
	var partial []PartialBundle
	for bundleIndex := int32(0); bundleIndex < int32(r.store.NumBundles()); bundleIndex++ {
		items := r.store.BundleItems.Items(bundleIndex)
		if len(items) == 0 {
			continue
		}
		var missing []int32
		for _, item := range items {
			if !owned.Contains(item) {
				missing = append(missing, item)
			}
		}
		if len(missing) == 0 || len(missing) == len(items) {
			continue
		}
		missingIds := make([]string, len(missing))
		for i, item := range missing {
			missingIds[i], _ = r.store.Items.String(item)
		}
		bundleId, _ := r.store.Bundles.String(bundleIndex)
		partial = append(partial, PartialBundle{
			BundleIndex:    bundleIndex,
			BundleId:       bundleId,
			OwnershipRatio: float32(len(items)-len(missing)) / float32(len(items)),
			OwnedCount:     len(items) - len(missing),
			MissingIds:     missingIds,
			MissingIndices: missing,
		})
	}
	sort.Slice(partial, func(i, j int) bool {
		if partial[i].OwnershipRatio != partial[j].OwnershipRatio {
			return partial[i].OwnershipRatio > partial[j].OwnershipRatio
		}
		return partial[i].BundleIndex < partial[j].BundleIndex
	})
	return partial, nil
}

// Recommend returns the top k missing items across bundles with ownership
// ratio of at least minOwnership. The confidence of an item is the maximum
// ratio among bundles it is missing from, so a strong signal is rewarded
// without double counting. Ties are broken by ascending item index.
func (r *BundleCompletion) Recommend(userIndex int32, k int, minOwnership float32) ([]Score, error) {
	partial, err := r.GetPartialBundles(userIndex)
	if err != nil {
		return nil, err
	}
	confidence := make(map[int32]float32)
	for _, bundle := range partial {
		if bundle.OwnershipRatio < minOwnership {
			continue
		}
		for _, item := range bundle.MissingIndices {
			if bundle.OwnershipRatio > confidence[item] {
				confidence[item] = bundle.OwnershipRatio
			}
		}
	}
	filter := heap.NewTopKFilter[int32, float32](clamp(k, r.store.NumItems()))
	for item, score := range confidence {
		filter.Push(item, score)
	}
	indices, values := filter.PopAll()
	result := make([]Score, len(indices))
	for i := range indices {
		result[i] = Score{Index: indices[i], Score: values[i]}
	}
	return result, nil
}
