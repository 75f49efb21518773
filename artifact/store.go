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

// Package artifact validates precomputed recommendation artifacts and
// assembles them into an immutable, internally consistent store.
package artifact

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/gamerec/gamerec/base/log"
	"github.com/gamerec/gamerec/dataset"
	"github.com/gamerec/gamerec/similarity"
)

// Well-known artifact names.
const (
	KeySimilarityMatrices = "similarity_matrices"
	KeyInteractions       = "interactions"
	KeyPopularity         = "popularity"
	KeyBundles            = "bundles"
	KeyBundleSimilarity   = "bundle_similarity"
	KeyItemIndex          = "item_index"
	KeyUserIndex          = "user_index"
	KeyBundleIndex        = "bundle_index"
)

// Store is the validated bundle of catalogs and matrices shared by all
// recommenders. It is immutable after NewStore returns and safe for
// concurrent readers.
type Store struct {
	Items   *dataset.Dict
	Users   *dataset.Dict
	Bundles *dataset.Dict

	Interactions     *dataset.Interactions
	BundleItems      *dataset.Bundles
	Similarities     map[string]*similarity.Index
	BundleSimilarity *similarity.Index
	Popularity       []float32

	// Dropped records artifacts that failed the shape check and were
	// excluded without aborting the load.
	Dropped []*ShapeMismatchError
}

func (s *Store) NumItems() int {
	return s.Items.Count()
}

func (s *Store) NumUsers() int {
	return s.Users.Count()
}

func (s *Store) NumBundles() int {
	return s.Bundles.Count()
}

// Similarity returns the similarity index registered under name.
func (s *Store) Similarity(name string) (*similarity.Index, bool) {
	index, ok := s.Similarities[name]
	return index, ok
}

// candidate is a similarity matrix parsed but not yet shape-checked.
type candidate struct {
	name  string
	dense [][]float32
	csr   *csrParts
	rows  int
	cols  int
}

func (c *candidate) square() bool {
	return c.rows == c.cols && c.rows > 0
}

func (c *candidate) build() (*similarity.Index, error) {
	if c.csr != nil {
		return similarity.NewCSR(c.csr.indptr, c.csr.indices, c.csr.values, c.csr.dim)
	}
	return similarity.NewDense(c.dense)
}

func parseCandidate(name string, v any) *candidate {
	if csr, ok := toCSR(v); ok {
		return &candidate{name: name, csr: csr, rows: csr.dim, cols: csr.dim}
	}
	if dense, ok := toMatrix(v); ok && len(dense) > 0 {
		c := &candidate{name: name, dense: dense, rows: len(dense), cols: len(dense[0])}
		for _, row := range dense {
			if len(row) != c.cols {
				// ragged matrices are never square
				c.cols = -1
				break
			}
		}
		return c
	}
	return nil
}

// NewStore validates raw named artifacts and builds a Store. Individual
// similarity matrices failing the shape check are dropped with a warning;
// a load that ends with neither a usable similarity matrix nor a popularity
// vector fails with ConfigurationError. The caller's input is not modified.
func NewStore(raw map[string]any) (*Store, error) {
	s := &Store{Similarities: make(map[string]*similarity.Index)}

	candidates, err := parseSimilarityMatrices(raw)
	if err != nil {
		return nil, err
	}
	popularity, hasPopularity, err := parsePopularity(raw)
	if err != nil {
		return nil, err
	}

	if err := s.resolveItems(raw, candidates, popularity); err != nil {
		return nil, err
	}
	if err := s.acceptSimilarities(candidates); err != nil {
		return nil, err
	}
	if len(s.Similarities) == 0 && !hasPopularity {
		return nil, configErrorf("no usable similarity matrix and no popularity fallback")
	}
	if err := s.resolvePopularity(popularity, hasPopularity); err != nil {
		return nil, err
	}
	if err := s.resolveInteractions(raw); err != nil {
		return nil, err
	}
	if err := s.resolveBundles(raw); err != nil {
		return nil, err
	}
	return s, nil
}

func parseSimilarityMatrices(raw map[string]any) ([]*candidate, error) {
	v, ok := raw[KeySimilarityMatrices]
	if !ok {
		return nil, nil
	}
	named, ok := v.(map[string]any)
	if !ok {
		return nil, configErrorf("%s must be a mapping from name to matrix", KeySimilarityMatrices)
	}
	names := lo.Keys(named)
	sort.Strings(names)
	candidates := make([]*candidate, 0, len(names))
	for _, name := range names {
		c := parseCandidate(name, named[name])
		if c == nil {
			log.Logger().Warn("ignore artifact: not a two-dimensional matrix", zap.String("name", name))
			continue
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

func parsePopularity(raw map[string]any) ([]float32, bool, error) {
	v, ok := raw[KeyPopularity]
	if !ok {
		return nil, false, nil
	}
	popularity, ok := toVector(v)
	if !ok {
		return nil, false, configErrorf("%s must be a numeric vector", KeyPopularity)
	}
	for _, p := range popularity {
		if math32.IsNaN(p) || math32.IsInf(p, 0) {
			return nil, false, configErrorf("%s must be finite", KeyPopularity)
		}
		if p < 0 {
			return nil, false, configErrorf("%s must be non-negative", KeyPopularity)
		}
	}
	return popularity, true, nil
}

// resolveItems builds the item catalog: explicit artifact first, otherwise
// synthesized as 0..N-1 from the first square similarity matrix, otherwise
// from the popularity vector length.
func (s *Store) resolveItems(raw map[string]any, candidates []*candidate, popularity []float32) error {
	if v, ok := raw[KeyItemIndex]; ok {
		items, err := parseCatalog(KeyItemIndex, v)
		if err != nil {
			return err
		}
		s.Items = items
		return nil
	}
	for _, c := range candidates {
		if c.square() {
			s.Items = dataset.NewIdentityDict(c.rows)
			return nil
		}
	}
	if len(popularity) > 0 {
		s.Items = dataset.NewIdentityDict(len(popularity))
		return nil
	}
	return configErrorf("cannot resolve item catalog: no item index, no square similarity matrix and no popularity vector")
}

// parseCatalog accepts an ordered identifier list or an id-to-index mapping.
// A mapping must be a bijection onto the contiguous range [0, N).
func parseCatalog(name string, v any) (*dataset.Dict, error) {
	if ids, ok := toStringSlice(v); ok {
		dict := dataset.NewDict()
		for _, id := range ids {
			dict.Add(id)
		}
		if dict.Count() != len(ids) {
			return nil, configErrorf("%s contains duplicate identifiers", name)
		}
		return dict, nil
	}
	indexed, ok := toIndexMap(v)
	if !ok {
		return nil, configErrorf("%s must be an identifier list or an id-to-index mapping", name)
	}
	ids := make([]string, len(indexed))
	seen := make([]bool, len(indexed))
	for id, index := range indexed {
		if index < 0 || index >= len(indexed) || seen[index] {
			return nil, configErrorf("%s is not a bijection onto [0, %d)", name, len(indexed))
		}
		ids[index] = id
		seen[index] = true
	}
	dict := dataset.NewDict()
	for _, id := range ids {
		dict.Add(id)
	}
	return dict, nil
}

func (s *Store) acceptSimilarities(candidates []*candidate) error {
	want := s.Items.Count()
	for _, c := range candidates {
		if !c.square() || c.rows != want {
			s.drop(&ShapeMismatchError{Name: c.name, Rows: c.rows, Cols: c.cols, Want: want})
			continue
		}
		index, err := c.build()
		if err != nil {
			log.Logger().Warn("ignore similarity matrix", zap.String("name", c.name), zap.Error(err))
			continue
		}
		s.Similarities[c.name] = index
	}
	return nil
}

func (s *Store) drop(err *ShapeMismatchError) {
	s.Dropped = append(s.Dropped, err)
	log.Logger().Warn("ignore matrix with mismatched shape",
		zap.String("name", err.Name),
		zap.Int("rows", err.Rows),
		zap.Int("cols", err.Cols),
		zap.Int("want", err.Want))
}

func (s *Store) resolvePopularity(popularity []float32, hasPopularity bool) error {
	if hasPopularity {
		if len(popularity) != s.NumItems() {
			return configErrorf("popularity vector has length %d, want %d", len(popularity), s.NumItems())
		}
		s.Popularity = popularity
		return nil
	}
	// Fall back to degree centrality of the first similarity matrix.
	names := lo.Keys(s.Similarities)
	sort.Strings(names)
	s.Popularity = s.Similarities[names[0]].RowSums()
	log.Logger().Info("popularity vector missing, falling back to similarity row sums",
		zap.String("matrix", names[0]))
	return nil
}

func (s *Store) resolveInteractions(raw map[string]any) error {
	v, ok := raw[KeyInteractions]
	if !ok {
		s.Users = dataset.NewDict()
		s.Interactions = dataset.NewInteractions(0, s.NumItems())
		return nil
	}
	if owned, ok := toStringListMap(v); ok {
		return s.buildInteractionsFromMap(raw, owned)
	}
	if rows, ok := toMatrix(v); ok {
		return s.buildInteractionsFromMatrix(raw, rows)
	}
	return configErrorf("%s must be a user-to-items mapping or a user-item matrix", KeyInteractions)
}

func (s *Store) buildInteractionsFromMap(raw map[string]any, owned map[string][]string) error {
	if v, ok := raw[KeyUserIndex]; ok {
		users, err := parseCatalog(KeyUserIndex, v)
		if err != nil {
			return err
		}
		s.Users = users
	} else {
		userIds := lo.Keys(owned)
		sort.Strings(userIds)
		s.Users = dataset.NewDict()
		for _, userId := range userIds {
			s.Users.Add(userId)
		}
	}
	s.Interactions = dataset.NewInteractions(s.Users.Count(), s.NumItems())
	for userId, itemIds := range owned {
		userIndex, ok := s.Users.Id(userId)
		if !ok {
			log.Logger().Warn("ignore interactions of unknown user", zap.String("user_id", userId))
			continue
		}
		for _, itemId := range itemIds {
			itemIndex, ok := s.Items.Id(itemId)
			if !ok {
				log.Logger().Debug("ignore unknown item in interactions",
					zap.String("user_id", userId), zap.String("item_id", itemId))
				continue
			}
			s.Interactions.Add(userIndex, itemIndex)
		}
	}
	s.Interactions.Freeze()
	return nil
}

func (s *Store) buildInteractionsFromMatrix(raw map[string]any, rows [][]float32) error {
	for _, row := range rows {
		if len(row) != s.NumItems() {
			return configErrorf("interaction matrix has %d columns, want %d", len(row), s.NumItems())
		}
	}
	if v, ok := raw[KeyUserIndex]; ok {
		users, err := parseCatalog(KeyUserIndex, v)
		if err != nil {
			return err
		}
		if users.Count() != len(rows) {
			return configErrorf("user index has %d entries but interaction matrix has %d rows",
				users.Count(), len(rows))
		}
		s.Users = users
	} else {
		s.Users = dataset.NewIdentityDict(len(rows))
	}
	s.Interactions = dataset.NewInteractions(len(rows), s.NumItems())
	for i, row := range rows {
		for j, value := range row {
			if value != 0 {
				s.Interactions.Add(int32(i), int32(j))
			}
		}
	}
	s.Interactions.Freeze()
	return nil
}

func (s *Store) resolveBundles(raw map[string]any) error {
	// An explicit bundle catalog defines the row order of the bundle
	// similarity matrix and takes precedence over membership key order.
	if v, ok := raw[KeyBundleIndex]; ok {
		bundles, err := parseCatalog(KeyBundleIndex, v)
		if err != nil {
			return err
		}
		s.Bundles = bundles
	}
	if v, ok := raw[KeyBundles]; ok {
		memberships, ok := toStringListMap(v)
		if !ok {
			return configErrorf("%s must be a mapping from bundle id to item ids", KeyBundles)
		}
		if s.Bundles == nil {
			bundleIds := lo.Keys(memberships)
			sort.Strings(bundleIds)
			s.Bundles = dataset.NewDict()
			for _, bundleId := range bundleIds {
				s.Bundles.Add(bundleId)
			}
		}
		s.BundleItems = dataset.NewBundles(s.Bundles.Count())
		for bundleId, itemIds := range memberships {
			bundleIndex, ok := s.Bundles.Id(bundleId)
			if !ok {
				log.Logger().Warn("ignore membership of unknown bundle",
					zap.String("bundle_id", bundleId))
				continue
			}
			for _, itemId := range itemIds {
				itemIndex, ok := s.Items.Id(itemId)
				if !ok {
					log.Logger().Debug("ignore unknown item in bundle",
						zap.String("bundle_id", bundleId), zap.String("item_id", itemId))
					continue
				}
				s.BundleItems.Add(bundleIndex, itemIndex)
			}
		}
		s.BundleItems.Freeze()
	}
	if v, ok := raw[KeyBundleSimilarity]; ok {
		c := parseCandidate(KeyBundleSimilarity, v)
		if c == nil {
			log.Logger().Warn("ignore artifact: not a two-dimensional matrix",
				zap.String("name", KeyBundleSimilarity))
		} else {
			if s.Bundles == nil && c.square() {
				// bundle similarity without any catalog or memberships
				// still serves cross-bundle queries
				s.Bundles = dataset.NewIdentityDict(c.rows)
			}
			want := 0
			if s.Bundles != nil {
				want = s.Bundles.Count()
			}
			if !c.square() || c.rows != want {
				s.drop(&ShapeMismatchError{Name: c.name, Rows: c.rows, Cols: c.cols, Want: want})
			} else if index, err := c.build(); err != nil {
				log.Logger().Warn("ignore bundle similarity matrix", zap.Error(err))
			} else {
				s.BundleSimilarity = index
			}
		}
	}
	if s.Bundles == nil {
		s.Bundles = dataset.NewDict()
	}
	if s.BundleItems == nil {
		s.BundleItems = dataset.NewBundles(s.Bundles.Count())
	}
	return nil
}
