// Package records persists the render history backed by SQLite.
//
// A Record is the immutable outcome of one completed render: which slices
// of the image and video sequences it consumed, which audio track it was
// cut to, and where the artifact ended up. The Store keeps records ordered
// oldest to newest; the most recent record is the resume point for the
// next render.
package records
