// Package types defines the shared vocabulary of regpath: registry value
// types, predefined root stores, access-rights masks, typed errors, and the
// native registry API that higher layers call into.
//
// The Registry and Key interfaces describe the native store as a
// collaborator. regpath never implements registry semantics itself; it
// translates path operations into calls on these interfaces. Concrete stores
// live under pkg/registry (the real Windows registry, an in-memory store, and
// a bbolt-backed emulation).
//
// Design goals:
//   - Numbers that align with the Windows definitions (REG_*, HKEY_*, KEY_*).
//   - Typed errors with stable categories (not-found/access-denied/...).
//   - Handles that remember the rights they were opened with.
//
// This package has no dependencies beyond the standard library.
package types
