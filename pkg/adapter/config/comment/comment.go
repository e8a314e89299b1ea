// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package comment keeps the head-comments of a parsed YAML document,
// so they survive when the configuration file is written back, e.g.,
// after the passwd sub-command adds a console user to it.
package comment

import (
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Comment contains the head-comments of the children of a sequence or
// mapping yaml node. Mapping children are addressed by their keys and
// sequence children by their indices, so comments follow their keys
// even if the keys are reordered by the serialization.
type Comment struct {
	kind   yaml.Kind
	heads  map[string]string   // child address -> its head comment
	nested map[string]*Comment // child address -> its inner comments
}

// LoadFrom expects a yaml node with the sequence or mapping kind and
// records the head-comments of its children recursively.
func LoadFrom(n *yaml.Node) (*Comment, error) {
	if n.Kind != yaml.SequenceNode && n.Kind != yaml.MappingNode {
		return nil, errors.New("node must be a mapping or a sequence")
	}
	c := &Comment{
		kind:   n.Kind,
		heads:  make(map[string]string),
		nested: make(map[string]*Comment),
	}
	err := walk(n, func(addr string, head, value *yaml.Node) error {
		if head.HeadComment != "" {
			c.heads[addr] = head.HeadComment
		}
		if value.Kind != yaml.SequenceNode && value.Kind != yaml.MappingNode {
			return nil
		}
		inner, err := LoadFrom(value)
		if err != nil {
			return fmt.Errorf("loading comments of %q: %w", addr, err)
		}
		c.nested[addr] = inner
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// SaveInto writes the comments of `c` into the children of the `n`
// node which must have the same kind as the node `c` was loaded from.
// Children which had no comments are left untouched. A nil Comment
// saves nothing.
func (c *Comment) SaveInto(n *yaml.Node) error {
	if c == nil {
		return nil
	}
	if n.Kind != c.kind {
		return fmt.Errorf("expected node kind %d, found %d", c.kind, n.Kind)
	}
	return walk(n, func(addr string, head, value *yaml.Node) error {
		if s, ok := c.heads[addr]; ok {
			head.HeadComment = s
		}
		if err := c.nested[addr].SaveInto(value); err != nil {
			return fmt.Errorf("saving comments of %q: %w", addr, err)
		}
		return nil
	})
}

// walk calls fn for each child of the n sequence or mapping node.
// The head argument is the node which carries the head-comment of
// the child (the key node of a mapping entry), while value is the
// child value itself.
func walk(n *yaml.Node, fn func(addr string, head, value *yaml.Node) error) error {
	if n.Kind == yaml.SequenceNode {
		for i, cn := range n.Content {
			if err := fn(strconv.Itoa(i), cn, cn); err != nil {
				return err
			}
		}
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if err := fn(k.Value, k, v); err != nil {
			return err
		}
	}
	return nil
}
