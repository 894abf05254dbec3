// SPDX-License-Identifier: Unlicense OR MIT

/*
Package layout implements a two phase box layout engine over a tree of
nodes stored in a World.

The measure phase, QuerySize, reports the minimum and preferred size
of a subtree under a set of Limits. The arrange phase, UpdateSubtree,
resolves the final size of every node and writes rectangles and
positions back to the World. Update drives a complete pass for a
viewport.

Nodes with children arrange them with a Strategy: Flow places them in
a row or column with collapsing margins, Stack places them on top of
each other. Leaves are sized by their Size property or by a
SizeResolver for intrinsic content such as text.

Results are cached per node and reused while the node and its
descendants are unchanged. Property updates through the World mark
nodes dirty; the next Update invalidates them and their ancestors.

Broken invariants are logged to the Context logger rather than
reported as errors, because the engine always produces some layout.
*/
package layout
