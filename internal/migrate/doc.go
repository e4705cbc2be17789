// Package migrate detects cocotb v1 constructs in Python source and rewrites
// them to their v2 form.
//
// Four constructs are recognised: the coroutine decorator, yield-based
// suspend points, out-of-band ReturnValue returns and fork spawn calls.
// Detection runs one read-only analysis over the tree; Scan reports its
// findings and Migrate applies the fixable ones by rebuilding only the nodes
// they touch, so every byte outside a rewritten construct is printed as it was
// read.
//
// A function is converted only when its own decorator matched and nothing in
// its own scope (nested functions and classes excluded) is unfixable.
// Otherwise the function is left alone and every finding in it is reported
// with Unfixable set. Spawn renames are not tied to any function.
package migrate
