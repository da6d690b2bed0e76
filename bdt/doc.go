// Package bdt calibrates a Black-Derman-Toy binomial short-rate lattice to
// an observed term structure and prices off the calibrated lattice.
//
// Calibration walks forward one maturity at a time. At step n the rates of
// row n are a geometric progression r, r*mu, r*mu^2, ... with
// mu = exp(2*sigma), and the pair (r, sigma) is fixed by two conditions:
//
//  1. the lattice prices the (n+1)-year zero-coupon bond at its observed price;
//  2. the one-year-ahead yields of that bond at the two time-1 nodes satisfy
//     Y1 = Y0 * exp(2*sigmaY), sigmaY being the observed yield volatility.
//
// For the first step sigma is read straight off the observed volatility and
// only r is solved for. Arrow-Debreu prices from the root and from both
// time-1 nodes are carried forward between steps so every equation is a
// plain sum over terminal nodes.
package bdt
