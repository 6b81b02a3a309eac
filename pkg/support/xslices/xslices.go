// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package xslices provide small generic helpers missing from the standard slices package.
package xslices

import (
	"cmp"
	"slices"

	"golang.org/x/exp/constraints"
)

// Copy creates a new (shallow) copy of slice. It returns nil for an empty slice.
func Copy[T any](slice []T) []T {
	if len(slice) == 0 {
		return nil
	}
	slice2 := make([]T, len(slice))
	copy(slice2, slice)
	return slice2
}

// Copy2D creates a copy of a 2D slice, including copies of each row.
func Copy2D[T any](slice [][]T) [][]T {
	if slice == nil {
		return nil
	}
	out := make([][]T, len(slice))
	for ii, row := range slice {
		out[ii] = Copy(row)
	}
	return out
}

// SliceWithValue creates a slice of given size filled with given value.
func SliceWithValue[T any](size int, value T) []T {
	s := make([]T, size)
	for ii := range s {
		s[ii] = value
	}
	return s
}

// Slice2DWithValue creates a dim0×dim1 2D-slice filled with value.
func Slice2DWithValue[T any](value T, dim0, dim1 int) [][]T {
	data := SliceWithValue(dim0*dim1, value)
	out := make([][]T, dim0)
	for ii := range out {
		out[ii] = data[ii*dim1 : (ii+1)*dim1 : (ii+1)*dim1]
	}
	return out
}

// Scale2D returns a copy of the 2D-slice with every element multiplied by factor.
func Scale2D[T constraints.Integer | constraints.Float](slice [][]T, factor T) [][]T {
	out := Copy2D(slice)
	for _, row := range out {
		for ii := range row {
			row[ii] *= factor
		}
	}
	return out
}

// Iota returns a slice of incremental values, starting with start and of length len.
// Eg: Iota(3.0, 2) -> []float64{3.0, 4.0}
func Iota[T constraints.Integer | constraints.Float](start T, len int) (slice []T) {
	slice = make([]T, len)
	for ii := range slice {
		slice[ii] = start + T(ii)
	}
	return
}

// Map executes the given function sequentially for every element on in, and returns a mapped slice.
func Map[In, Out any](in []In, fn func(e In) Out) (out []Out) {
	out = make([]Out, len(in))
	for ii, e := range in {
		out[ii] = fn(e)
	}
	return
}

// SortedKeys returns the sorted keys of a map.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
