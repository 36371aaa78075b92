// Package table provides Table, an insertion-ordered set of named
// Variables with constants, change notification and cached handles.
//
// Every entry in a Table is a slot owned by a handle. Scalar slots hold a
// variable.Variable and are reached through *ScalarHandle; typed slots
// created by GetHandleOf hold a T directly and are reached through
// *Handle[T]. Handles are stable: asking for the same name again returns
// the same handle, and ResetValues resets slots in place so that handles
// held by callers observe the reset.
//
// A Table is not safe for concurrent use.
package table
