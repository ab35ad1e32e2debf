package exprbridge

import (
	"fmt"

	"github.com/beevik/etree"
)

// NamespaceMap is an auxiliary tag-prefix -> tmpl.Namespace-name mapping,
// loaded from a small XML config file, for cmd/tmplfmt's --namespaces flag.
// This is purely an ambient tooling concern, the same etree-based document
// walking chtml/component.go uses for its own component-shape imports: the
// core parser's GetNamespace hook takes a plain func, never etree, so
// parsing itself never imports this file's dependency.
type NamespaceMap map[string]string

// LoadNamespaceMap reads an XML document like:
//
//	<namespaces>
//	  <ns prefix="svg:" value="svg"/>
//	  <ns prefix="math:" value="math"/>
//	</namespaces>
//
// and returns the prefix -> namespace-name pairs it declares.
func LoadNamespaceMap(path string) (NamespaceMap, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("exprbridge: read namespace config: %w", err)
	}
	root := doc.SelectElement("namespaces")
	if root == nil {
		return nil, fmt.Errorf("exprbridge: %s: missing <namespaces> root element", path)
	}
	m := make(NamespaceMap)
	for _, el := range root.SelectElements("ns") {
		prefix := el.SelectAttrValue("prefix", "")
		value := el.SelectAttrValue("value", "")
		if prefix == "" {
			continue
		}
		m[prefix] = value
	}
	return m, nil
}

// NamespaceFor returns the namespace name registered for tag's longest
// matching prefix, or "" (HTML) if none match.
func (m NamespaceMap) NamespaceFor(tag string) string {
	best := ""
	for prefix, ns := range m {
		if len(prefix) > len(best) && hasPrefix(tag, prefix) {
			best = prefix
			_ = ns
		}
	}
	if best == "" {
		return ""
	}
	return m[best]
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
