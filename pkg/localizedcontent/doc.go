// Package localizedcontent provides a generic engine for managing localized
// aggregates: a locale-independent General record carrying structural
// attributes and binary assets, paired with one or more locale-scoped
// Translation records carrying human-readable text.
//
// The engine is parameterized by the General and Translation attribute
// shapes. Domain-specific behavior (uniqueness keys, cross-field validators,
// cascade policy, dependent checks) is supplied through a Definition rather
// than by duplicating the engine per domain family.
//
// Binary assets live in an external blob store behind the BlobStore
// interface. Asset replacement is ordered upload-before-delete so a live
// record never points at a deleted blob; blob deletion is best-effort and
// never fails the operation that triggered it.
package localizedcontent
