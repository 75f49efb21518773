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

package artifact

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const artifactJSON = `{
	"similarity_matrices": {
		"combined": [[1, 0.5], [0.5, 1]]
	},
	"item_index": ["portal", "half-life"],
	"popularity": [2, 1],
	"interactions": {
		"alice": ["portal"]
	},
	"bundles": {
		"orange-box": ["portal", "half-life"]
	}
}`

func TestLoadReader(t *testing.T) {
	store, err := LoadReader(strings.NewReader(artifactJSON))
	assert.NoError(t, err)
	assert.Equal(t, 2, store.NumItems())
	assert.Equal(t, 1, store.NumUsers())
	assert.Equal(t, 1, store.NumBundles())
	assert.Equal(t, []float32{2, 1}, store.Popularity)

	index, ok := store.Similarity("combined")
	assert.True(t, ok)
	row, err := index.Row(0)
	assert.NoError(t, err)
	assert.Equal(t, []float32{1, 0.5}, row)
}

func TestLoadReaderMalformed(t *testing.T) {
	_, err := LoadReader(strings.NewReader("not json"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifacts.json")
	assert.NoError(t, os.WriteFile(path, []byte(artifactJSON), 0644))
	store, err := LoadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, 2, store.NumItems())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifacts.json")
	assert.NoError(t, os.WriteFile(path, []byte(artifactJSON), 0644))
	store, err := LoadFile(path, map[string]any{
		KeyItemIndex: []string{"10", "20"},
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"10", "20"}, store.Items.Strings())
}

func TestReadCatalogCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.csv")
	assert.NoError(t, os.WriteFile(path, []byte("item_id,name\n10,Portal\n20,Half-Life\n"), 0644))
	ids, err := ReadCatalogCSV(path, "item_id")
	assert.NoError(t, err)
	assert.Equal(t, []string{"10", "20"}, ids)

	_, err = ReadCatalogCSV(path, "missing_column")
	assert.Error(t, err)
}
