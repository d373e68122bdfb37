// Package tikz exports ZX diagrams as TikZ pictures for LaTeX.
//
// Each vertex becomes a \node whose style is its category label (z_node,
// x_phase, boundary, ...) and each edge a \draw with style simple_edge or
// hadamard_edge. Node names are the vertex handles and positions are taken
// from the vertex coordinates with the vertical axis flipped. The standalone
// document defines every style; [Fragment] omits the preamble so the picture
// can be pasted into a document that defines its own.
//
// Compiling the document is left to the caller.
package tikz
