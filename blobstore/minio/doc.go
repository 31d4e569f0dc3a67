// Package minio provides a blobstore.Store implementation using the MinIO client.
//
// It works with MinIO and other S3-compatible servers (Ceph, SeaweedFS,
// Garage) without pulling in the AWS SDK.
//
// # Basic Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "networks", "batch-7/")
//
// NewFromEndpoint builds the client from an endpoint and static credentials.
package minio
