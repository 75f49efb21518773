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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gamerec/gamerec/artifact"
)

func newCrossBundleStore(t *testing.T) *artifact.Store {
	store, err := artifact.NewStore(map[string]any{
		artifact.KeySimilarityMatrices: map[string]any{
			"combined": [][]float32{{1}},
		},
		artifact.KeyItemIndex: []string{"a"},
		artifact.KeyBundleIndex: []string{
			"alpha", "beta", "gamma", "delta",
		},
		artifact.KeyBundleSimilarity: [][]float32{
			{1.0, 0.8, 0.05, 0.3},
			{0.8, 1.0, 0.3, 0.3},
			{0.05, 0.3, 1.0, 0.0},
			{0.3, 0.3, 0.0, 1.0},
		},
	})
	assert.NoError(t, err)
	return store
}

func TestCrossBundleRecommend(t *testing.T) {
	store := newCrossBundleStore(t)
	recommender, err := NewCrossBundle(store)
	assert.NoError(t, err)

	scores, err := recommender.Recommend(0, 10, 0.1)
	assert.NoError(t, err)
	assert.Equal(t, []BundleScore{
		{Index: 1, Id: "beta", Similarity: 0.8},
		{Index: 3, Id: "delta", Similarity: 0.3},
	}, scores)
	// the query bundle and anything below the floor never appear
	for _, score := range scores {
		assert.NotEqual(t, int32(0), score.Index)
		assert.GreaterOrEqual(t, score.Similarity, float32(0.1))
	}
}

func TestCrossBundleSelfExcludedAtZeroFloor(t *testing.T) {
	store := newCrossBundleStore(t)
	recommender, err := NewCrossBundle(store)
	assert.NoError(t, err)

	// even with a floor of zero the self similarity of 1.0 is not returned
	scores, err := recommender.Recommend(2, 10, 0)
	assert.NoError(t, err)
	assert.Equal(t, []BundleScore{
		{Index: 1, Id: "beta", Similarity: 0.3},
		{Index: 0, Id: "alpha", Similarity: 0.05},
		{Index: 3, Id: "delta", Similarity: 0},
	}, scores)
}

func TestCrossBundleTieBreak(t *testing.T) {
	store := newCrossBundleStore(t)
	recommender, err := NewCrossBundle(store)
	assert.NoError(t, err)

	// bundles 1 and 3 tie at 0.3: ascending index wins
	scores, err := recommender.Recommend(2, 1, 0.1)
	assert.NoError(t, err)
	assert.Equal(t, []BundleScore{{Index: 1, Id: "beta", Similarity: 0.3}}, scores)
}

func TestCrossBundleTopK(t *testing.T) {
	store := newCrossBundleStore(t)
	recommender, err := NewCrossBundle(store)
	assert.NoError(t, err)

	scores, err := recommender.Recommend(0, 1, 0.1)
	assert.NoError(t, err)
	assert.Equal(t, []BundleScore{{Index: 1, Id: "beta", Similarity: 0.8}}, scores)
}

func TestCrossBundleOutOfRange(t *testing.T) {
	store := newCrossBundleStore(t)
	recommender, err := NewCrossBundle(store)
	assert.NoError(t, err)

	var rangeErr *OutOfRangeError
	_, err = recommender.Recommend(4, 10, 0.1)
	assert.ErrorAs(t, err, &rangeErr)
	_, err = recommender.Recommend(-1, 10, 0.1)
	assert.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "bundle", rangeErr.Kind)
}

func TestNewCrossBundleWithoutMatrix(t *testing.T) {
	store, err := artifact.NewStore(map[string]any{
		artifact.KeySimilarityMatrices: map[string]any{
			"combined": [][]float32{{1}},
		},
	})
	assert.NoError(t, err)

	var configErr *artifact.ConfigurationError
	_, err = NewCrossBundle(store)
	assert.ErrorAs(t, err, &configErr)
}
