// Package poly provides the foundational value types for systems of
// quadratic equations whose variables range over [0, 1].
//
// This package contains value types only. All other internal packages
// import poly; poly imports nothing internal. This keeps the equation
// model the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Terms are immutable once constructed
//   - Variable presence is exposed through (index, ok) accessors, never
//     through a raw sentinel index
//   - Variable states move in one direction only:
//     Unknown -> ZeroOrOne -> {Zero, One}
package poly
