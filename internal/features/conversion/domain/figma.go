package domain

// FigmaFile is the subset of GET /v1/files/:key the service reads.
type FigmaFile struct {
	Name         string    `json:"name"`
	LastModified string    `json:"lastModified"`
	Version      string    `json:"version"`
	Document     FigmaNode `json:"document"`
}

// FigmaNode is one node of the design tree.
type FigmaNode struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Type     string      `json:"type"`
	Children []FigmaNode `json:"children,omitempty"`
}

// CountNodes returns the number of nodes in the subtree rooted at n.
func (n FigmaNode) CountNodes() int {
	total := 1
	for _, child := range n.Children {
		total += child.CountNodes()
	}
	return total
}
