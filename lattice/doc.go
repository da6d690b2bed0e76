// Package lattice stores a recombining binomial short-rate lattice and the
// Arrow-Debreu prices derived from it.
//
// A node (n, j) is time step n after j up-moves, 0 <= j <= n. The lattice
// holds three tables:
//
//	R[n][j]       short rate prevailing over period n at node (n, j)
//	P[n][j]       risk-neutral probability of an up-move from (n, j)
//	AD[n,i,m,j]   time-n, node-i price of a claim paying 1 at node (m, j)
//
// Rows of R are written strictly in increasing n. Arrow-Debreu prices are
// derived from rows of smaller m only, either by one martingale step
// (PriceOneStep) or by Jamshidian forward induction (ForwardInduct).
//
// Reading a cell outside the valid node range, or one that has not been
// written yet, is a caller bug: accessors panic with an *IndexError that
// wraps ErrIndexOutOfRange.
package lattice
