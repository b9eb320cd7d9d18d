// Package s3 provides an Amazon S3 BlobStore and a DynamoDB-backed run log.
//
// Store reads blobs with ranged GETs and writes them either with a single
// PutObject (Put) or a streaming multipart upload (Create). RunLog keeps a
// versioned history of cohort runs, using DynamoDB conditional writes so two
// processes analysing the same cohort never overwrite each other's record.
//
// # Basic Usage
//
//	s3Client, ddbClient, err := s3.NewClients(ctx, s3.ClientConfig{Region: "eu-west-1"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	store := s3.NewStore(s3Client, "my-bucket", "tcga/")
//	runs := s3.NewRunLog(ddbClient, "tcga-explorer-runs")
package s3
