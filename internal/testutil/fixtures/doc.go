// Package fixtures provides fluent builders for the entities the backend
// returns, so tests can describe server payloads in one line each.
//
// Basic usage:
//
//	food := fixtures.Category("c1", "Food").Build()
//	old := fixtures.Category("c2", "Old").Archived().Build()
//	tx := fixtures.Transaction("t1").At(fixtures.Day(2024, 2, 10)).Income().Build()
//
// Every builder starts from deterministic defaults (fixed timestamps, EUR,
// expense type) so that tests only spell out what they care about.
package fixtures
