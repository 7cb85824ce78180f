// Package classify turns probed stream lists into per-file stream sets
// with per-kind counts. Cover art (attached pictures) is separated from
// real video so downstream sanity checks are not fooled by embedded
// poster images.
package classify
