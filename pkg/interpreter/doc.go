// Package interpreter evaluates pkg/ast modules.
//
// Evaluation is total: operand combinations the language does not support
// produce None, conversions of malformed text produce zero, and a while loop
// stops silently after MaxLoopIterations body executions. The only error Run
// reports is a failure writing print output.
package interpreter
