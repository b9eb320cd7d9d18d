// Package resource governs what concurrent cohort runs may consume.
//
// A Controller tracks three budgets:
//
//   - Memory: bytes reserved for pairwise matrices and cached blobs
//   - Workers: number of cohorts analysed at the same time
//   - IO: bytes per second read from or written to the blob store
//
// Every budget is optional; a zero limit means tracking only. A nil
// *Controller is valid and imposes no limits.
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes:     1 << 30,
//	    MaxConcurrentCohorts: 4,
//	})
//	if err := rc.AcquireMemory(ctx, resource.MatrixBytes(n)); err != nil {
//	    return err
//	}
//	defer rc.ReleaseMemory(resource.MatrixBytes(n))
package resource
