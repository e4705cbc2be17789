// Package cst is a lossless concrete syntax tree for Python source.
//
// A tree is built from the lexer's token stream: every token becomes a Leaf,
// trivia stays attached to the following token, and Node groups elements by
// grammar production. Serialize concatenates leading trivia and text of every
// leaf in order, so a tree built by the parser prints back byte for byte.
//
// Trees are never mutated after construction. Edits build new nodes that share
// untouched subtrees with the original (see With, Splice, WithLeading).
package cst
