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
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/juju/errors"
	"go.uber.org/zap"

	"github.com/gamerec/gamerec/base/log"
)

// LoadFile reads a JSON document of named artifacts and builds a store from
// it. This is the only I/O of the engine and happens once at startup. The
// optional overrides replace same-named artifacts from the document, e.g. an
// item catalog read from a CSV export.
func LoadFile(path string, overrides ...map[string]any) (*Store, error) {
	start := time.Now()
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer file.Close()
	var raw map[string]any
	if err = json.NewDecoder(file).Decode(&raw); err != nil {
		return nil, errors.Trace(err)
	}
	for _, override := range overrides {
		for key, value := range override {
			raw[key] = value
		}
	}
	store, err := NewStore(raw)
	if err != nil {
		return nil, errors.Annotatef(err, "load artifacts from %s", path)
	}
	log.Logger().Info("loaded artifacts",
		zap.String("path", path),
		zap.Int("n_items", store.NumItems()),
		zap.Int("n_users", store.NumUsers()),
		zap.Int("n_bundles", store.NumBundles()),
		zap.Int("n_similarity_matrices", len(store.Similarities)),
		zap.Duration("elapsed", time.Since(start)))
	return store, nil
}

// LoadReader decodes named artifacts from r and builds a store.
func LoadReader(r io.Reader) (*Store, error) {
	var raw map[string]any
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&raw); err != nil {
		return nil, errors.Trace(err)
	}
	return NewStore(raw)
}

// ReadCatalogCSV reads an ordered identifier catalog from a CSV file. The
// identifiers are taken from the named column; row order defines the index.
// The result plugs into a raw artifact map as an item, user or bundle index.
func ReadCatalogCSV(path, column string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer file.Close()
	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, errors.Trace(err)
	}
	columnIndex := -1
	for i, name := range header {
		if name == column {
			columnIndex = i
			break
		}
	}
	if columnIndex < 0 {
		return nil, errors.Errorf("column %q not found in %s", column, path)
	}
	var ids []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Trace(err)
		}
		ids = append(ids, record[columnIndex])
	}
	return ids, nil
}
