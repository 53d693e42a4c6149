// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package stepwise

// Algorithm describes a tree engine for presentation purposes.
type Algorithm struct {
	Name            string
	Description     string
	TimeComplexity  string
	SpaceComplexity string
	// Pseudocode is the listing that step line numbers refer to (1-based).
	Pseudocode []string
}

var algorithms = [numKinds]Algorithm{
	AVL: {
		Name: "AVL tree",
		Description: "An AVL tree is a self-balancing binary search tree in which the heights of the " +
			"two subtrees of any node differ by at most one. After an insertion, the heights and " +
			"balance factors of the nodes on the insertion path are recomputed bottom-up; a node " +
			"whose balance factor leaves [-1, 1] is fixed with a single or double rotation. The " +
			"height of the tree stays O(log n), so search and insertion take O(log n) time.",
		TimeComplexity:  "O(log n)",
		SpaceComplexity: "O(log n)",
		Pseudocode: []string{
			"insert(node, key):",
			"  if node is null: return new Node(key)",
			"  if key < node.key: node.left = insert(node.left, key)",
			"  else if key > node.key: node.right = insert(node.right, key)",
			"  else: return node",
			"  node.height = 1 + max(height(node.left), height(node.right))",
			"  bf = height(node.left) - height(node.right)",
			"  if bf > 1 and key < node.left.key: return rotateRight(node)",
			"  if bf < -1 and key > node.right.key: return rotateLeft(node)",
			"  if bf > 1 and key > node.left.key:",
			"    node.left = rotateLeft(node.left)",
			"    return rotateRight(node)",
			"  if bf < -1 and key < node.right.key:",
			"    node.right = rotateRight(node.right)",
			"    return rotateLeft(node)",
			"  return node",
		},
	},
	RedBlack: {
		Name: "Red-Black tree",
		Description: "A red-black tree is a self-balancing binary search tree whose nodes are colored " +
			"red or black. The root is black, a red node never has a red child, and every path from " +
			"a node down to a missing child crosses the same number of black nodes. A new node is " +
			"inserted red; violations are then repaired by recoloring and at most two rotations. " +
			"Balance is looser than in an AVL tree, but modifications rotate less.",
		TimeComplexity:  "O(log n)",
		SpaceComplexity: "O(n)",
		Pseudocode: []string{
			"insert(tree, key):",
			"  node = new red Node(key); bstInsert(tree, node)",
			"  while node != tree.root and node.parent is red:",
			"    if node.parent is a left child:",
			"      uncle = grandparent.right",
			"      if uncle is red:",
			"        recolor parent and uncle black, grandparent red",
			"        node = grandparent",
			"      else:",
			"        if node is a right child:",
			"          node = node.parent; rotateLeft(tree, node)",
			"        recolor parent black, grandparent red",
			"        rotateRight(tree, grandparent)",
			"    else: mirror of the above",
			"  tree.root.color = black",
		},
	},
	BST: {
		Name: "binary search tree",
		Description: "A binary search tree keeps every key in the left subtree of a node smaller " +
			"than the node's key and every key in the right subtree larger. Insertion walks down " +
			"from the root, going left or right at each node, and attaches the new node where the " +
			"walk falls off the tree. Nothing rebalances the tree, so sorted input degenerates " +
			"into a chain.",
		TimeComplexity:  "O(log n) average, O(n) worst case",
		SpaceComplexity: "O(h) where h is the height of the tree",
		Pseudocode: []string{
			"insert(node, key):",
			"  if node is null: return new Node(key)",
			"  if key < node.key: node.left = insert(node.left, key)",
			"  else if key > node.key: node.right = insert(node.right, key)",
			"  return node",
		},
	},
}

// Info returns the description of the given engine.
func Info(k Kind) Algorithm {
	if k >= numKinds {
		return Algorithm{Name: k.String()}
	}
	return algorithms[k]
}
