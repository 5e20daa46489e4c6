package keys

// Prune removes the given keys from the tree in place, then removes any
// container object left empty by the removals. A container survives as long
// as one descendant leaf survives. Prune never touches the filesystem;
// writing the result back is the caller's decision.
func Prune(tree map[string]any, unused []FlattenedKey) {
	for _, k := range unused {
		removeLeaf(tree, k.OriginalPath)
	}
}

// removeLeaf deletes one leaf by its raw segments, cascading upward through
// parents emptied by the delete.
func removeLeaf(tree map[string]any, path []string) {
	if len(path) == 0 {
		return
	}
	if len(path) == 1 {
		delete(tree, path[0])
		return
	}

	child, ok := tree[path[0]].(map[string]any)
	if !ok {
		return
	}
	removeLeaf(child, path[1:])
	if len(child) == 0 {
		delete(tree, path[0])
	}
}
