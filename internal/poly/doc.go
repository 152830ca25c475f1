// Package poly models single power-function terms and their symbolic
// derivatives.
//
// A [Term] represents f(x) = c*x^e with an optional additive constant:
//
//   - [Eval]: sample a term at an input
//   - [Differentiate]: one application of the power rule
//   - [DerivativeN]: the n-th derivative of a term
//
// All operations are pure; a fresh Term is produced per differentiation
// step and the inputs are never mutated.
package poly
