// Package value models the runtime value trees that inhabit a manifest
// schema: absent, string, number, bool, list and map nodes. Values are
// immutable; SetIn, With and Merge return new trees and never modify their
// receivers. Absent is a first-class state so callers can tell "not supplied"
// apart from an empty list or map.
package value
