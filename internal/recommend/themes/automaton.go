// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package themes

import "strings"

// automaton is an Aho-Corasick matcher whose outputs are theme bitmasks.
// Bit i of a node's output is set when a keyword of theme i ends at that
// node or at any node on its failure chain. Scanning a text therefore yields
// the set of mentioned themes in O(len(text)) regardless of keyword count.
//
// The automaton is immutable after construction and safe for concurrent use.
type automaton struct {
	root *acNode
	all  uint64
}

type acNode struct {
	children map[rune]*acNode
	failure  *acNode
	output   uint64
}

func newACNode() *acNode {
	return &acNode{children: make(map[rune]*acNode)}
}

func newAutomaton(vocab []Theme) *automaton {
	a := &automaton{root: newACNode()}
	for i, theme := range vocab {
		bit := uint64(1) << uint(i)
		a.all |= bit
		for _, kw := range theme.Keywords {
			a.insert(strings.ToLower(kw), bit)
		}
	}
	a.link()
	return a
}

func (a *automaton) insert(keyword string, bit uint64) {
	if keyword == "" {
		return
	}
	node := a.root
	for _, ch := range keyword {
		next := node.children[ch]
		if next == nil {
			next = newACNode()
			node.children[ch] = next
		}
		node = next
	}
	node.output |= bit
}

// link builds failure links breadth-first and folds each node's failure
// output into its own.
func (a *automaton) link() {
	queue := make([]*acNode, 0, len(a.root.children))
	for _, child := range a.root.children {
		child.failure = a.root
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for ch, child := range current.children {
			queue = append(queue, child)

			fail := current.failure
			for fail != nil && fail.children[ch] == nil {
				fail = fail.failure
			}
			if fail == nil {
				child.failure = a.root
			} else {
				child.failure = fail.children[ch]
			}
			child.output |= child.failure.output
		}
	}
}

// scan returns the bitmask of themes mentioned anywhere in text.
// Scanning stops early once every theme has been seen.
func (a *automaton) scan(text string) uint64 {
	var seen uint64
	node := a.root
	for _, ch := range strings.ToLower(text) {
		for node != a.root && node.children[ch] == nil {
			node = node.failure
		}
		if next := node.children[ch]; next != nil {
			node = next
		}
		seen |= node.output
		if seen == a.all {
			break
		}
	}
	return seen
}
