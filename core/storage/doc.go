// Package storage provides read access to the artwork bucket.
//
// The importer talks to Google Cloud Storage through its S3-compatible
// endpoint using the Minio client; a local Minio serves as a stand-in during
// development. Only two operations are exposed: a bucket existence check used
// as the preflight of a run, and object listing, which feeds the key parser.
//
// # Interface Design
//
// The Client interface exists so the sync engine can be tested without a
// bucket. The mocks subpackage provides a testify-based implementation plus
// Listing/FailedListing helpers that build the channels minio-style listings
// deliver.
//
// # Public URLs
//
// Config.PublicBaseURL is the prefix under which the bucket's objects are
// served to browsers. Media URL construction lives with the artwork feature;
// this package only carries the configuration.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ok, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
