// Package resource implements the consistency and ownership engine for
// shared password-manager entries.
//
// A resource is independently decryptable by every user who holds a
// permission on it, so the stored ciphertext is one Secret row per
// authorized user. The engine keeps that distribution in lockstep with the
// permission grants on every mutation: it enforces that an owner always
// exists, that a supplied secret list exactly covers the authorized user
// set, and that retiring a resource scrubs its metadata and cascades
// cleanup over permissions, secrets and favorites in one atomic unit.
//
// The engine does not encrypt or decrypt anything, does not authenticate
// callers, and does not run field-level syntactic validation; it receives
// an already-authenticated actor id and pre-validated field data.
package resource
