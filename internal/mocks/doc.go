// Package mocks provides hand-written test doubles for the store and service
// interfaces. Each mock follows the same pattern: optional Fn fields override
// behavior per test, and simple default implementations back the common cases.
package mocks
