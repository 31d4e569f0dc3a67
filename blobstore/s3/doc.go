// Package s3 provides an Amazon S3 implementation of blobstore.Store.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("networks/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
// # Features
//
//   - Range reads for partial fetches
//   - Managed (multipart when large) uploads for Put
//   - Automatic pagination for listing
//   - Configurable key prefix and custom endpoints
package s3
