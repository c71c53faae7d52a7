// Package playbook loads playbook YAML documents into a typed play model.
//
// Loading happens in two passes: the file is decoded into a yaml.Node tree,
// registered tag interceptors rewrite tagged nodes (the vault interceptor is
// always installed), and the tree is then folded into Play values. Fields of
// the wrong shape are treated as absent rather than reported.
package playbook

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader decodes playbooks. The zero value is not usable; use NewLoader.
type Loader struct {
	interceptors map[string]TagInterceptor
}

// Option configures a Loader.
type Option func(*Loader)

// WithInterceptor registers ti for its tag, replacing any interceptor
// already registered for that tag.
func WithInterceptor(ti TagInterceptor) Option {
	return func(l *Loader) {
		l.interceptors[ti.Tag()] = ti
	}
}

// NewLoader returns a loader with the vault interceptor installed.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{interceptors: map[string]TagInterceptor{
		VaultTag: VaultInterceptor{},
	}}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadFile reads and decodes the playbook at path.
func LoadFile(path string) (*Document, error) {
	return NewLoader().LoadFile(path)
}

// LoadFile reads and decodes the playbook at path.
func (l *Loader) LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	doc, err := l.decode(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return doc, nil
}

// Load decodes a playbook from r.
func (l *Loader) Load(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &IOError{Op: "read", Err: err}
	}
	doc, err := l.decode(data)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return doc, nil
}

func (l *Loader) decode(data []byte) (*Document, error) {
	var root yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return &Document{}, nil // empty file
		}
		return nil, err
	}
	if err := checkAcyclic(&root); err != nil {
		return nil, err
	}
	if err := intercept(&root, l.interceptors); err != nil {
		return nil, fmt.Errorf("intercept tags: %w", err)
	}
	return buildDocument(&root), nil
}
