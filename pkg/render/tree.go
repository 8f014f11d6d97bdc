package render

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/drengskapur/gatherfiles/pkg/gather"
)

type treeNode struct {
	name     string
	dir      bool
	children map[string]*treeNode
}

func (n *treeNode) add(segments []string) {
	cur := n
	for i, seg := range segments {
		child, ok := cur.children[seg]
		if !ok {
			child = &treeNode{name: seg, children: map[string]*treeNode{}}
			cur.children[seg] = child
		}
		if i < len(segments)-1 {
			child.dir = true
		}
		cur = child
	}
}

// sorted returns the children with directories first, then by name ignoring case.
func (n *treeNode) sorted() []*treeNode {
	out := make([]*treeNode, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].dir != out[j].dir {
			return out[i].dir
		}
		li, lj := strings.ToLower(out[i].name), strings.ToLower(out[j].name)
		if li != lj {
			return li < lj
		}
		return out[i].name < out[j].name
	})
	return out
}

// Tree draws the entries of result as a directory tree rooted at its anchor.
//
//	/repo/
//	├── src/
//	│   └── main.rs
//	└── README.md
func Tree(result gather.Result) string {
	root := &treeNode{dir: true, children: map[string]*treeNode{}}
	for _, e := range result.Entries {
		root.add(strings.Split(e.RelPath, "/"))
	}

	var b strings.Builder
	if result.Anchor != "" {
		b.WriteString(strings.TrimSuffix(filepath.ToSlash(result.Anchor), "/"))
		b.WriteString("/\n")
	}
	writeTree(&b, root, "")
	return b.String()
}

func writeTree(b *strings.Builder, n *treeNode, prefix string) {
	children := n.sorted()
	for i, child := range children {
		connector := "├── "
		extension := "│   "
		if i == len(children)-1 {
			connector = "└── "
			extension = "    "
		}

		b.WriteString(prefix)
		b.WriteString(connector)
		b.WriteString(child.name)
		if child.dir {
			b.WriteString("/")
		}
		b.WriteString("\n")

		if child.dir {
			writeTree(b, child, prefix+extension)
		}
	}
}
