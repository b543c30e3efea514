// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package keylist implements an ordered list (slice) of items,
with a map from a key (e.g., names) to indexes,
to support fast lookup by name while preserving
declaration order. Property bundles, handler registries
and scope frames are all keylists, because the order in
which names were declared is observable in each of them.
*/
package keylist

import (
	"fmt"
	"iter"
	"strings"
)

// List implements an ordered list (slice) of Values,
// with a map from a key (e.g., names) to indexes,
// to support fast lookup by name. The zero value is
// usable without initialization.
type List[K comparable, V any] struct {

	// Values is the ordered slice of items.
	Values []V

	// Keys is the ordered list of keys, in same order as [List.Values].
	Keys []K

	// indexes is the key-to-index mapping.
	indexes map[K]int
}

// New returns a new [List]. The zero value
// is usable without initialization, so this is
// just a simple standard convenience method.
func New[K comparable, V any]() *List[K, V] {
	return &List[K, V]{}
}

// initIndexes ensures that the index map exists.
func (kl *List[K, V]) initIndexes() {
	if kl.indexes == nil {
		kl.indexes = make(map[K]int, len(kl.Keys))
		for i, k := range kl.Keys {
			kl.indexes[k] = i
		}
	}
}

// Set sets given key to given value, adding to the end of the list
// if not already present, and otherwise replacing with this new value
// in its existing position. This is the same semantics as a Go map.
// See [List.Add] for version that only adds and does not replace.
func (kl *List[K, V]) Set(key K, val V) {
	kl.initIndexes()
	if idx, ok := kl.indexes[key]; ok {
		kl.Values[idx] = val
		return
	}
	kl.indexes[key] = len(kl.Values)
	kl.Values = append(kl.Values, val)
	kl.Keys = append(kl.Keys, key)
}

// Add adds an item to the list with given key.
// An error is returned if the key is already on the list.
// See [List.Set] for a method that automatically replaces.
func (kl *List[K, V]) Add(key K, val V) error {
	kl.initIndexes()
	if _, ok := kl.indexes[key]; ok {
		return fmt.Errorf("keylist.Add: key %v is already on the list", key)
	}
	kl.indexes[key] = len(kl.Values)
	kl.Values = append(kl.Values, val)
	kl.Keys = append(kl.Keys, key)
	return nil
}

// At returns the value corresponding to the given key,
// with a zero value returned for a missing key. See [List.AtTry]
// for one that returns a bool for missing keys.
func (kl *List[K, V]) At(key K) V {
	v, _ := kl.AtTry(key)
	return v
}

// AtTry returns the value corresponding to the given key,
// with false returned for a missing key, in case the zero value
// is not diagnostic.
func (kl *List[K, V]) AtTry(key K) (V, bool) {
	if kl == nil {
		var zv V
		return zv, false
	}
	kl.initIndexes()
	idx, ok := kl.indexes[key]
	if ok {
		return kl.Values[idx], true
	}
	var zv V
	return zv, false
}

// IndexByKey returns the index of the given key, with a -1 for missing key.
func (kl *List[K, V]) IndexByKey(key K) int {
	if kl == nil {
		return -1
	}
	kl.initIndexes()
	idx, ok := kl.indexes[key]
	if !ok {
		return -1
	}
	return idx
}

// Len returns the number of items in the list.
func (kl *List[K, V]) Len() int {
	if kl == nil {
		return 0
	}
	return len(kl.Values)
}

// All returns an iterator over the keys and values in list order.
func (kl *List[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if kl == nil {
			return
		}
		for i, k := range kl.Keys {
			if !yield(k, kl.Values[i]) {
				return
			}
		}
	}
}

// Clone returns a shallow copy of the list: the keys and values
// slices are copied, the values themselves are not.
func (kl *List[K, V]) Clone() *List[K, V] {
	nl := &List[K, V]{}
	if kl == nil {
		return nl
	}
	nl.Keys = append(nl.Keys, kl.Keys...)
	nl.Values = append(nl.Values, kl.Values...)
	return nl
}

// Copy copies all of the entries from the given key list
// into this list. It keeps existing entries in this
// list unless they also exist in the given list, in which case
// they are overwritten in place.
func (kl *List[K, V]) Copy(from *List[K, V]) {
	for k, v := range from.All() {
		kl.Set(k, v)
	}
}

// String returns a string representation of the list.
func (kl *List[K, V]) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, k := range kl.Keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%v: %v", k, kl.Values[i])
	}
	sb.WriteString("}")
	return sb.String()
}
