package playbook

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const mergeKey = "<<"

type pair struct {
	key   string
	value *yaml.Node
}

// resolve follows aliases to the anchored node.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// checkAcyclic fails when an alias points back into its own anchored node,
// as in "&a [1, *a]". Every other walk over the tree assumes it is acyclic.
func checkAcyclic(root *yaml.Node) error {
	onPath := make(map[*yaml.Node]bool)
	done := make(map[*yaml.Node]bool)
	var walk func(n *yaml.Node) error
	walk = func(n *yaml.Node) error {
		if n == nil || done[n] {
			return nil
		}
		if n.Kind == yaml.AliasNode {
			if onPath[n.Alias] {
				return fmt.Errorf("line %d: alias *%s refers to an enclosing anchor", n.Line, n.Value)
			}
			return walk(n.Alias)
		}
		onPath[n] = true
		for _, c := range n.Content {
			if err := walk(c); err != nil {
				return err
			}
		}
		delete(onPath, n)
		done[n] = true
		return nil
	}
	return walk(root)
}

// pairs lists the entries of a mapping node in declaration order. Merge keys
// contribute their entries first; a later duplicate keeps the earlier position
// and takes the later value. Returns nil for non-mapping nodes.
func pairs(n *yaml.Node) []pair {
	n = resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	var merged, own []pair
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := resolve(n.Content[i]), n.Content[i+1]
		if k.Kind == yaml.ScalarNode && k.Value == mergeKey && (k.Tag == "" || k.Tag == "!!merge") {
			merged = append(merged, mergeSources(v)...)
			continue
		}
		own = append(own, pair{key: k.Value, value: v})
	}
	out := make([]pair, 0, len(merged)+len(own))
	index := make(map[string]int, len(merged)+len(own))
	for _, p := range append(merged, own...) {
		if i, ok := index[p.key]; ok {
			out[i].value = p.value
			continue
		}
		index[p.key] = len(out)
		out = append(out, p)
	}
	return out
}

func mergeSources(v *yaml.Node) []pair {
	v = resolve(v)
	if v == nil {
		return nil
	}
	if v.Kind == yaml.SequenceNode {
		var out []pair
		for _, item := range v.Content {
			out = append(out, pairs(item)...)
		}
		return out
	}
	return pairs(v)
}

// lookup returns the value for key in a mapping node.
func lookup(n *yaml.Node, key string) (*yaml.Node, bool) {
	for _, p := range pairs(n) {
		if p.key == key {
			return resolve(p.value), true
		}
	}
	return nil, false
}

func isMapping(n *yaml.Node) bool {
	n = resolve(n)
	return n != nil && n.Kind == yaml.MappingNode
}

func isSequence(n *yaml.Node) bool {
	n = resolve(n)
	return n != nil && n.Kind == yaml.SequenceNode
}

func isNull(n *yaml.Node) bool {
	n = resolve(n)
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

// IsString reports whether n is a string scalar.
func IsString(n *yaml.Node) bool {
	n = resolve(n)
	return n != nil && n.Kind == yaml.ScalarNode && n.Tag == "!!str"
}

// Text renders a node the way it should appear in a report: scalars as their
// source text (null as empty), collections in YAML flow style.
func Text(n *yaml.Node) string {
	n = resolve(n)
	if n == nil || isNull(n) {
		return ""
	}
	if n.Kind == yaml.ScalarNode {
		return n.Value
	}
	out, err := yaml.Marshal(flowCopy(n))
	if err != nil {
		return ""
	}
	// the emitter may fold long flow collections across lines
	return foldedBreak.ReplaceAllString(strings.TrimRight(string(out), "\n"), " ")
}

var foldedBreak = regexp.MustCompile(`\n\s*`)

// flowCopy deep-copies n with every collection in flow style, aliases
// inlined and comments dropped, so it can be marshaled on one line.
func flowCopy(n *yaml.Node) *yaml.Node {
	n = resolve(n)
	if n == nil {
		return nil
	}
	c := &yaml.Node{
		Kind:  n.Kind,
		Tag:   n.Tag,
		Value: n.Value,
	}
	if n.Kind == yaml.MappingNode || n.Kind == yaml.SequenceNode {
		c.Style = yaml.FlowStyle
		c.Content = make([]*yaml.Node, 0, len(n.Content))
		for _, child := range n.Content {
			c.Content = append(c.Content, flowCopy(child))
		}
	}
	return c
}

// scalarString returns the text of a scalar node and whether n was one.
func scalarString(n *yaml.Node) (string, bool) {
	n = resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode || isNull(n) {
		return "", false
	}
	return n.Value, true
}
