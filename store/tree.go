package store

// treeNode is owned by its parent, or by TreeStore for the root.
type treeNode struct {
	record Record
	left   *treeNode
	right  *treeNode
}

// insertNode descends to an empty slot and returns the new subtree root.
// Names equal to a node's name go right, so duplicates become separate
// nodes below the first occurrence.
func insertNode(n *treeNode, r Record) *treeNode {
	if n == nil {
		return &treeNode{record: r}
	}

	if r.Name < n.record.Name {
		n.left = insertNode(n.left, r)
	} else {
		n.right = insertNode(n.right, r)
	}

	return n
}

// removeMin detaches the leftmost node of n and returns the new subtree
// root together with the detached record.
func removeMin(n *treeNode) (*treeNode, Record) {
	if n.left == nil {
		right := n.right
		n.right = nil

		return right, n.record
	}

	var succ Record
	n.left, succ = removeMin(n.left)

	return n, succ
}

// deleteNode removes the first node named name found top-down and returns
// the new subtree root plus whether a node was removed.
func deleteNode(n *treeNode, name string) (*treeNode, bool) {
	if n == nil {
		return nil, false
	}

	var deleted bool

	switch {
	case name < n.record.Name:
		n.left, deleted = deleteNode(n.left, name)
	case name > n.record.Name:
		n.right, deleted = deleteNode(n.right, name)
	default:
		if n.left == nil {
			return n.right, true
		}

		if n.right == nil {
			return n.left, true
		}

		// Two children: promote the in-order successor's record and drop
		// the successor, which has no left child.
		n.right, n.record = removeMin(n.right)
		deleted = true
	}

	return n, deleted
}

// TreeStore is an unbalanced binary search tree ordered by name. Sorted
// insertion degrades it to a list.
type TreeStore struct {
	root *treeNode
	size int
}

var _ Store = (*TreeStore)(nil)

// NewTree returns an empty TreeStore.
func NewTree() *TreeStore {
	return new(TreeStore)
}

func (t *TreeStore) Name() string { return "BST" }

// Insert is O(log n) on random input and O(n) in the worst case.
func (t *TreeStore) Insert(r Record) {
	t.root = insertNode(t.root, r)
	t.size++
}

func (t *TreeStore) find(name string) *treeNode {
	n := t.root
	for n != nil {
		switch {
		case name == n.record.Name:
			return n
		case name < n.record.Name:
			n = n.left
		default:
			n = n.right
		}
	}

	return nil
}

func (t *TreeStore) Search(name string) (Record, bool) {
	n := t.find(name)
	if n == nil {
		return Record{}, false
	}

	return n.record, true
}

func (t *TreeStore) Update(name string, fields ...Field) bool {
	n := t.find(name)
	if n == nil {
		return false
	}

	apply(&n.record, fields)

	return true
}

func (t *TreeStore) Delete(name string) bool {
	var deleted bool

	t.root, deleted = deleteNode(t.root, name)
	if deleted {
		t.size--
	}

	return deleted
}

func (t *TreeStore) Size() int { return t.size }
