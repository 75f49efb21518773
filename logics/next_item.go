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

	"github.com/samber/lo"

	"github.com/gamerec/gamerec/artifact"
	"github.com/gamerec/gamerec/base/floats"
	"github.com/gamerec/gamerec/base/heap"
	"github.com/gamerec/gamerec/similarity"
)

// NextItem is the hybrid next-purchase recommender. Scores combine the
// row-normalized similarity to the user's library with global popularity:
//
//	combined = alpha*meanSimilarity + (1-alpha)*popularity
//
// Users without interactions fall back to pure popularity.
type NextItem struct {
	store      *artifact.Store
	similarity *similarity.Index
	alpha      float32
	// (1-alpha)*popularity, precomputed so the warm path is one fused
	// multiply-add over the candidates
	scaledPopularity []float32
}

// NewNextItem creates a next-item recommender over the named similarity
// matrix. An empty name selects the first matrix in lexicographic order, or
// popularity-only scoring when the store carries no similarity matrix at
// all. The normalized matrix is derived here so serving never races on it.
func NewNextItem(store *artifact.Store, similarityName string, alpha float32) (*NextItem, error) {
	if alpha < 0 || alpha > 1 {
		return nil, &artifact.ConfigurationError{Reason: "alpha must be in [0, 1]"}
	}
	var index *similarity.Index
	if similarityName == "" {
		if names := lo.Keys(store.Similarities); len(names) > 0 {
			sort.Strings(names)
			index = store.Similarities[names[0]]
		}
	} else {
		var ok bool
		index, ok = store.Similarity(similarityName)
		if !ok {
			return nil, &artifact.ConfigurationError{
				Reason: "similarity matrix " + similarityName + " not found",
			}
		}
	}
	if index != nil {
		index = index.Normalized()
	}
	scaledPopularity := make([]float32, len(store.Popularity))
	floats.MulConstTo(store.Popularity, 1-alpha, scaledPopularity)
	return &NextItem{
		store:            store,
		similarity:       index,
		alpha:            alpha,
		scaledPopularity: scaledPopularity,
	}, nil
}

// Recommend returns up to min(k, n_items) items ordered by descending score,
// ties broken by ascending item index. With excludeOwned the user's items
// never appear in the result.
func (r *NextItem) Recommend(userIndex int32, k int, excludeOwned bool) ([]Score, error) {
	if err := checkRange("user", userIndex, r.store.NumUsers()); err != nil {
		return nil, err
	}
	k = clamp(k, r.store.NumItems())
	if k <= 0 {
		return nil, nil
	}

	owned := r.store.Interactions.Row(userIndex)
	if len(owned) == 0 || r.similarity == nil {
		return r.popular(k, owned, excludeOwned), nil
	}

	simScores, err := r.similarity.AggregateScore(owned)
	if err != nil {
		return nil, err
	}
	combined := make([]float32, len(simScores))
	floats.MulConstAddTo(simScores, r.alpha, r.scaledPopularity, combined)
	return selectTopK(combined, k, owned, excludeOwned), nil
}

// popular is the cold-start branch: the top-k items by popularity.
func (r *NextItem) popular(k int, owned []int32, excludeOwned bool) []Score {
	return selectTopK(r.store.Popularity, k, owned, excludeOwned)
}

// selectTopK picks the k largest scores, ties by ascending index. Owned
// items are masked out before selection so they cannot appear.
func selectTopK(scores []float32, k int, owned []int32, excludeOwned bool) []Score {
	filter := heap.NewTopKFilter[int32, float32](k)
	next := 0
	for i, score := range scores {
		if excludeOwned && next < len(owned) && owned[next] == int32(i) {
			next++
			continue
		}
		filter.Push(int32(i), score)
	}
	indices, values := filter.PopAll()
	result := make([]Score, len(indices))
	for i := range indices {
		result[i] = Score{Index: indices[i], Score: values[i]}
	}
	return result
}
