// Package scheduler decides what the next render consumes and drives the
// render loop.
//
// The allocator turns the previous record and the catalog into the next
// pair of non-overlapping asset windows sized to cover the next audio
// track. Feasibility checks run before any rendering starts so exhausted
// source material is detected cheaply. The runner owns the sequential
// render loop, the record store handoff, and the artifact feed.
package scheduler
