package manifest

// Entry is one key of a Node. Exactly one of Value and Child is meaningful:
// Child is nil for string leaves.
type Entry struct {
	Key   string
	Value string
	Child *Node
}

// IsLeaf reports whether the entry holds a string.
func (e Entry) IsLeaf() bool {
	return e.Child == nil
}

// Node is an ordered string-keyed mapping. Keys are unique; setting an
// existing key replaces its value in place.
type Node struct {
	entries []Entry
	index   map[string]int
}

// NewNode creates an empty node.
func NewNode() *Node {
	return &Node{index: make(map[string]int)}
}

// Len returns the number of keys.
func (n *Node) Len() int {
	return len(n.entries)
}

// Keys returns the keys in insertion order.
func (n *Node) Keys() []string {
	out := make([]string, len(n.entries))
	for i, e := range n.entries {
		out[i] = e.Key
	}
	return out
}

// Entries returns the entries in insertion order.
func (n *Node) Entries() []Entry {
	out := make([]Entry, len(n.entries))
	copy(out, n.entries)
	return out
}

// Get returns the entry for key.
func (n *Node) Get(key string) (Entry, bool) {
	i, ok := n.index[key]
	if !ok {
		return Entry{}, false
	}
	return n.entries[i], true
}

// String returns the string value of key. ok is false if the key is missing
// or holds a block.
func (n *Node) String(key string) (string, bool) {
	e, ok := n.Get(key)
	if !ok || !e.IsLeaf() {
		return "", false
	}
	return e.Value, true
}

// Child returns the block under key. ok is false if the key is missing or
// holds a string.
func (n *Node) Child(key string) (*Node, bool) {
	e, ok := n.Get(key)
	if !ok || e.IsLeaf() {
		return nil, false
	}
	return e.Child, true
}

// Set stores a string under key.
func (n *Node) Set(key, value string) {
	n.put(Entry{Key: key, Value: value})
}

// SetChild stores child under key.
func (n *Node) SetChild(key string, child *Node) {
	n.put(Entry{Key: key, Child: child})
}

// Block returns the block under key, creating it (or replacing a string)
// when needed.
func (n *Node) Block(key string) *Node {
	if c, ok := n.Child(key); ok {
		return c
	}
	c := NewNode()
	n.SetChild(key, c)
	return c
}

func (n *Node) put(e Entry) {
	if n.index == nil {
		n.index = make(map[string]int)
	}
	if i, ok := n.index[e.Key]; ok {
		n.entries[i] = e
		return
	}
	n.index[e.Key] = len(n.entries)
	n.entries = append(n.entries, e)
}
