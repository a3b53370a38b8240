// Package wmi wraps the management-instrumentation query objects of
// the foreign runtime: a creatable Locator connects to a namespace,
// Services executes queries, and ObjectEnum walks result sets with a
// pass-through timeout where "no item yet" is a normal outcome, not
// an error.
package wmi
