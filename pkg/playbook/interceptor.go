package playbook

import "gopkg.in/yaml.v3"

// VaultTag is the custom tag marking an encrypted scalar.
const VaultTag = "!vault"

// Redacted replaces the content of every vault-encrypted scalar.
const Redacted = "ENCRYPTED"

// TagInterceptor rewrites nodes carrying a custom tag before the play model
// is built. Intercept may replace the node's content in place.
type TagInterceptor interface {
	Tag() string
	Intercept(n *yaml.Node) error
}

// VaultInterceptor swaps vault ciphertext for the Redacted placeholder.
type VaultInterceptor struct{}

func (VaultInterceptor) Tag() string { return VaultTag }

func (VaultInterceptor) Intercept(n *yaml.Node) error {
	redact(n, Redacted)
	return nil
}

// redact turns n into a plain string scalar holding text.
func redact(n *yaml.Node, text string) {
	n.Kind = yaml.ScalarNode
	n.Tag = "!!str"
	n.Value = text
	n.Style = 0
	n.Content = nil
	n.Alias = nil
}

// intercept walks the tree and applies the interceptor registered for each
// node's tag. Aliases are not followed; their targets are visited where they
// are anchored.
func intercept(n *yaml.Node, byTag map[string]TagInterceptor) error {
	if n == nil || len(byTag) == 0 {
		return nil
	}
	if ti, ok := byTag[n.Tag]; ok {
		if err := ti.Intercept(n); err != nil {
			return err
		}
	}
	if n.Kind == yaml.AliasNode {
		return nil
	}
	for _, c := range n.Content {
		if err := intercept(c, byTag); err != nil {
			return err
		}
	}
	return nil
}
