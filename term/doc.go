// Package term defines the capability contract that every multiplicative
// factor of a product must satisfy, together with stock implementations
// (variables, closures over variables, categorical indices) and the ordered
// name-keyed Set container used throughout prodint.
//
// The engine in the product package consumes only the Term, Real and
// Category interfaces; it never inspects a factor's internal structure.
// Identity is by name: two terms with the same name are the same term.
package term
