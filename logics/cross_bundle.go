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
	"github.com/gamerec/gamerec/artifact"
	"github.com/gamerec/gamerec/base/heap"
)

// CrossBundle discovers bundles similar to a given bundle from the
// bundle-bundle similarity matrix.
type CrossBundle struct {
	store *artifact.Store
}

func NewCrossBundle(store *artifact.Store) (*CrossBundle, error) {
	if store.BundleSimilarity == nil {
		return nil, &artifact.ConfigurationError{Reason: "bundle similarity matrix not loaded"}
	}
	return &CrossBundle{store: store}, nil
}

// BundleScore is a recommended bundle with its similarity to the query.
type BundleScore struct {
	Index      int32   `json:"index"`
	Id         string  `json:"id"`
	Similarity float32 `json:"similarity"`
}

// Recommend returns up to k bundles with similarity of at least
// minSimilarity, ordered by descending similarity, ties by ascending bundle
// index. The query bundle itself is never included.
func (r *CrossBundle) Recommend(bundleIndex int32, k int, minSimilarity float32) ([]BundleScore, error) {
	if err := checkRange("bundle", bundleIndex, r.store.BundleSimilarity.Dim()); err != nil {
		return nil, err
	}
	row, err := r.store.BundleSimilarity.Row(bundleIndex)
	if err != nil {
		return nil, err
	}
	filter := heap.NewTopKFilter[int32, float32](clamp(k, len(row)))
	for i, score := range row {
		if int32(i) == bundleIndex || score < minSimilarity {
			continue
		}
		filter.Push(int32(i), score)
	}
	indices, values := filter.PopAll()
	result := make([]BundleScore, len(indices))
	for i := range indices {
		id, _ := r.store.Bundles.String(indices[i])
		result[i] = BundleScore{Index: indices[i], Id: id, Similarity: values[i]}
	}
	return result, nil
}
