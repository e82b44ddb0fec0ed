// Package snapshot stores rendered HTML.
//
// A Store is picked from a target string:
//
//	store, err := snapshot.Open("out/snapshots", snapshot.S3Config{})
//	store, err := snapshot.Open("s3://my-bucket/previews/", snapshot.S3Config{Region: "eu-west-1"})
//
//	loc, err := store.Put(ctx, "counter", html)
//
// Snapshots are named by the app that produced them; the store adds the
// .html extension.
package snapshot
