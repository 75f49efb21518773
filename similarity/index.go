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

// Package similarity wraps square item-item similarity matrices behind one
// scoring interface. The storage backend (dense or CSR) is chosen at
// construction and callers never branch on it.
package similarity

import (
	"sync"

	"github.com/juju/errors"

	"github.com/gamerec/gamerec/base/floats"
)

// backend is the storage-specific part of an Index.
type backend interface {
	dim() int
	// row writes the dense form of row i into dst. dst must have length dim.
	row(i int32, dst []float32)
	rowSum(i int32) float32
	// addRow adds c times row i to dst.
	addRow(i int32, c float32, dst []float32)
	// normalize returns a row-stochastic copy. Rows with zero sum are left
	// all-zero instead of dividing by zero.
	normalize() backend
}

// Index is an immutable square similarity matrix. The normalized copy is
// derived on first use and cached; Index is safe for concurrent readers.
type Index struct {
	backend backend

	normOnce   sync.Once
	normalized *Index
}

// NewDense creates an Index over a dense row-major matrix. The matrix must
// be square and non-empty.
func NewDense(rows [][]float32) (*Index, error) {
	if len(rows) == 0 {
		return nil, errors.New("similarity: empty matrix")
	}
	for _, row := range rows {
		if len(row) != len(rows) {
			return nil, errors.Errorf("similarity: matrix is not square: %d rows but a row of length %d",
				len(rows), len(row))
		}
	}
	return &Index{backend: &denseBackend{rows: rows}}, nil
}

// NewCSR creates an Index over a compressed sparse row matrix. indptr has
// n+1 entries delimiting each row's slice of indices and values.
func NewCSR(indptr []int, indices []int32, values []float32, n int) (*Index, error) {
	if n <= 0 {
		return nil, errors.New("similarity: empty matrix")
	}
	if len(indptr) != n+1 {
		return nil, errors.Errorf("similarity: indptr length %d does not match dimension %d", len(indptr), n)
	}
	if indptr[0] != 0 {
		return nil, errors.Errorf("similarity: indptr must start at 0, got %d", indptr[0])
	}
	for i := 0; i < n; i++ {
		if indptr[i] > indptr[i+1] {
			return nil, errors.Errorf("similarity: indptr is not non-decreasing at row %d", i)
		}
	}
	if len(indices) != len(values) || indptr[n] != len(indices) {
		return nil, errors.New("similarity: indices and values do not agree with indptr")
	}
	for _, j := range indices {
		if j < 0 || int(j) >= n {
			return nil, errors.Errorf("similarity: column index %d out of range [0, %d)", j, n)
		}
	}
	return &Index{backend: &csrBackend{indptr: indptr, indices: indices, values: values, n: n}}, nil
}

func (x *Index) Dim() int {
	return x.backend.dim()
}

// Row returns a dense copy of row i. The caller owns the returned slice.
func (x *Index) Row(i int32) ([]float32, error) {
	if i < 0 || int(i) >= x.Dim() {
		return nil, errors.Errorf("similarity: row %d out of range [0, %d)", i, x.Dim())
	}
	dst := make([]float32, x.Dim())
	x.backend.row(i, dst)
	return dst, nil
}

// RowSums returns the sum of each row, one entry per item. It is the degree
// centrality of the matrix and serves as a popularity fallback.
func (x *Index) RowSums() []float32 {
	sums := make([]float32, x.Dim())
	for i := range sums {
		sums[i] = x.backend.rowSum(int32(i))
	}
	return sums
}

// Normalized returns a row-stochastic view of the matrix, computed once and
// cached. Rows whose sum is zero stay all-zero.
func (x *Index) Normalized() *Index {
	x.normOnce.Do(func() {
		x.normalized = &Index{backend: x.backend.normalize()}
		// normalizing twice is a no-op
		x.normalized.normOnce.Do(func() {})
		x.normalized.normalized = x.normalized
	})
	return x.normalized
}

// AggregateScore scores every candidate item as the mean of the rows indexed
// by owned:
//
//	score[j] = sum_{i in owned} M[i][j] / |owned|
//
// owned must be non-empty and within [0, Dim()).
func (x *Index) AggregateScore(owned []int32) ([]float32, error) {
	if len(owned) == 0 {
		return nil, errors.New("similarity: empty owned set")
	}
	dst := make([]float32, x.Dim())
	for _, i := range owned {
		if i < 0 || int(i) >= x.Dim() {
			return nil, errors.Errorf("similarity: owned index %d out of range [0, %d)", i, x.Dim())
		}
		x.backend.addRow(i, 1, dst)
	}
	floats.MulConst(dst, 1/float32(len(owned)))
	return dst, nil
}
