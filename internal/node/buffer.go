package node

// DirectoryBuffer is the cached listing for one directory plus a focus
// cursor. When Total > 0 the focus is always within [0, Total-1]; when the
// listing is empty the focus stays at 0 and no node is focused.
type DirectoryBuffer struct {
	Parent string `yaml:"parent"`
	Nodes  []Node `yaml:"nodes"`
	Total  int    `yaml:"total"`
	Focus  int    `yaml:"focus"`
}

func NewDirectoryBuffer(parent string, nodes []Node, focus int) DirectoryBuffer {
	return DirectoryBuffer{
		Parent: parent,
		Nodes:  nodes,
		Total:  len(nodes),
		Focus:  focus,
	}
}

// FocusedNode returns the node under the cursor, or nil for an empty or
// missing buffer.
func (d *DirectoryBuffer) FocusedNode() *Node {
	if d == nil || d.Focus < 0 || d.Focus >= len(d.Nodes) {
		return nil
	}
	return &d.Nodes[d.Focus]
}
