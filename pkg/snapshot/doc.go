// Package snapshot persists committed host trees.
//
// A Recorder observes an engine and stores the HTML of the host tree after
// every successful commit, keyed by the commit sequence number. Two stores
// are provided: BoltStore keeps snapshots in a local bbolt file, S3Store
// writes one JSON object per snapshot to an S3 bucket.
package snapshot
