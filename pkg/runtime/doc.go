// Package runtime defines the interpreter's dynamic values, the operator
// tables that combine them, and the flat variable environment.
//
// Every operator is total: an operand combination the language does not
// support evaluates to None instead of failing.
package runtime
