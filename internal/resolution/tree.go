package resolution

import (
	"fmt"
	"io"
)

// PrintTree prints the resolved graph with box-drawing characters, one root
// declaration per top-level branch.
func PrintTree(w io.Writer, result *Result) {
	if len(result.Roots) == 0 {
		fmt.Fprintln(w, "No dependencies")
		return
	}
	for i, root := range result.Roots {
		printNode(w, root, "", i == len(result.Roots)-1)
	}
}

func printNode(w io.Writer, node *Node, prefix string, isLast bool) {
	connector := "├── "
	if isLast {
		connector = "└── "
	}
	fmt.Fprintf(w, "%s%s%s\n", prefix, connector, Label(node))

	childPrefix := prefix + "│   "
	if isLast {
		childPrefix = prefix + "    "
	}
	for i, child := range node.Children {
		printNode(w, child, childPrefix, i == len(node.Children)-1)
	}
}

// Label renders one node the way the tree shows it:
//
//	com.acme:core:1.0.0
//	com.acme:util:^1.0 -> 1.2.0
//	com.acme:util:1.0.0 -> 1.2.0 (deduped)
//	com.acme:missing:1.0.0 FAILED
func Label(node *Node) string {
	if node.Project {
		label := node.Requested
		if node.Deduped {
			label += " (deduped)"
		}
		return label
	}

	label := node.Requested
	if node.Failure != "" {
		return label + " FAILED"
	}
	if want := node.Module.Group + ":" + node.Module.Name + ":" + node.Module.Version; want != label {
		label += " -> " + node.Module.Version
	}
	if node.Deduped {
		label += " (deduped)"
	}
	return label
}
