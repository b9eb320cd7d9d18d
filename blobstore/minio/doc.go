// Package minio provides a BlobStore backed by MinIO or any other
// S3-compatible object store, using the official MinIO Go client.
//
// # Basic Usage
//
//	client, err := minio.NewClient(minio.Config{
//	    Endpoint:  "localhost:9000",
//	    AccessKey: "minioadmin",
//	    SecretKey: "minioadmin",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minio.NewStore(client, "tcga", "cohorts/")
//	explorer, err := tcgaexplorer.New(store)
package minio
