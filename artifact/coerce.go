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

import "github.com/samber/lo"

// Artifacts arrive either as native Go values or as the generic values
// produced by encoding/json. The helpers below coerce both shapes without
// mutating the caller's data.

func toFloat(v any) (float32, bool) {
	switch typed := v.(type) {
	case float32:
		return typed, true
	case float64:
		return float32(typed), true
	case int:
		return float32(typed), true
	case int32:
		return float32(typed), true
	case int64:
		return float32(typed), true
	default:
		return 0, false
	}
}

func toVector(v any) ([]float32, bool) {
	switch typed := v.(type) {
	case []float32:
		return typed, true
	case []float64:
		return lo.Map(typed, func(e float64, _ int) float32 { return float32(e) }), true
	case []int:
		return lo.Map(typed, func(e int, _ int) float32 { return float32(e) }), true
	case []any:
		vec := make([]float32, len(typed))
		for i, e := range typed {
			f, ok := toFloat(e)
			if !ok {
				return nil, false
			}
			vec[i] = f
		}
		return vec, true
	default:
		return nil, false
	}
}

func toMatrix(v any) ([][]float32, bool) {
	switch typed := v.(type) {
	case [][]float32:
		return typed, true
	case [][]float64:
		rows := make([][]float32, len(typed))
		for i, row := range typed {
			rows[i] = lo.Map(row, func(e float64, _ int) float32 { return float32(e) })
		}
		return rows, true
	case []any:
		rows := make([][]float32, len(typed))
		for i, row := range typed {
			vec, ok := toVector(row)
			if !ok {
				return nil, false
			}
			rows[i] = vec
		}
		return rows, true
	default:
		return nil, false
	}
}

func toIntSlice(v any) ([]int, bool) {
	switch typed := v.(type) {
	case []int:
		return typed, true
	case []int32:
		return lo.Map(typed, func(e int32, _ int) int { return int(e) }), true
	case []any:
		ints := make([]int, len(typed))
		for i, e := range typed {
			f, ok := toFloat(e)
			if !ok {
				return nil, false
			}
			ints[i] = int(f)
		}
		return ints, true
	default:
		return nil, false
	}
}

func toStringSlice(v any) ([]string, bool) {
	switch typed := v.(type) {
	case []string:
		return typed, true
	case []any:
		strs := make([]string, len(typed))
		for i, e := range typed {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			strs[i] = s
		}
		return strs, true
	default:
		return nil, false
	}
}

func toIndexMap(v any) (map[string]int, bool) {
	switch typed := v.(type) {
	case map[string]int:
		return typed, true
	case map[string]int32:
		out := make(map[string]int, len(typed))
		for k, e := range typed {
			out[k] = int(e)
		}
		return out, true
	case map[string]any:
		out := make(map[string]int, len(typed))
		for k, e := range typed {
			f, ok := toFloat(e)
			if !ok {
				return nil, false
			}
			out[k] = int(f)
		}
		return out, true
	default:
		return nil, false
	}
}

func toStringListMap(v any) (map[string][]string, bool) {
	switch typed := v.(type) {
	case map[string][]string:
		return typed, true
	case map[string]any:
		out := make(map[string][]string, len(typed))
		for k, e := range typed {
			list, ok := toStringSlice(e)
			if !ok {
				return nil, false
			}
			out[k] = list
		}
		return out, true
	default:
		return nil, false
	}
}

// csrParts is the sparse wire form of a similarity matrix.
type csrParts struct {
	indptr  []int
	indices []int32
	values  []float32
	dim     int
}

func toCSR(v any) (*csrParts, bool) {
	fields, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	indptr, ok := toIntSlice(fields["indptr"])
	if !ok {
		return nil, false
	}
	rawIndices, ok := toIntSlice(fields["indices"])
	if !ok {
		return nil, false
	}
	values, ok := toVector(fields["values"])
	if !ok {
		return nil, false
	}
	dim, ok := toFloat(fields["dim"])
	if !ok {
		return nil, false
	}
	return &csrParts{
		indptr:  indptr,
		indices: lo.Map(rawIndices, func(e int, _ int) int32 { return int32(e) }),
		values:  values,
		dim:     int(dim),
	}, true
}
