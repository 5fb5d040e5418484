package manifest

import (
	"strings"
)

// Format renders n as manifest text, tab indented, keys in order.
func Format(n *Node) string {
	var b strings.Builder
	writeNode(&b, n, 0)
	return b.String()
}

func writeNode(b *strings.Builder, n *Node, depth int) {
	indent := strings.Repeat("\t", depth)
	for _, e := range n.entries {
		b.WriteString(indent)
		b.WriteString(quote(e.Key))
		if e.IsLeaf() {
			b.WriteString("\t\t")
			b.WriteString(quote(e.Value))
			b.WriteByte('\n')
			continue
		}
		b.WriteByte('\n')
		b.WriteString(indent)
		b.WriteString("{\n")
		writeNode(b, e.Child, depth+1)
		b.WriteString(indent)
		b.WriteString("}\n")
	}
}

var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`)

func quote(s string) string {
	return `"` + escaper.Replace(s) + `"`
}
