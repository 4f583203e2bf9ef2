package laxder

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/mahdiidarabi/ecdsa-laxder/internal/log"
)

// VerifyRecords verifies records using parallel workers. Results are
// returned in record order.
//
// When ctx is cancelled the workers stop, the results of records that were
// never processed are nil, and the context error is returned wrapped.
func (c *Client) VerifyRecords(ctx context.Context, records []*Record) ([]*Result, error) {
	results := make([]*Result, len(records))
	if len(records) == 0 {
		return results, nil
	}

	// Auto-detect number of workers if not specified
	numWorkers := c.workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(records) {
		numWorkers = len(records)
	}
	log.L(ctx).Debugf("Verifying %d records with %d workers", len(records), numWorkers)

	workChan := make(chan int, numWorkers*10)
	var processed int64

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.worker(ctx, workChan, records, results, &processed)
		}()
	}

feed:
	for i := range records {
		select {
		case <-ctx.Done():
			break feed
		case workChan <- i:
		}
	}
	close(workChan)
	wg.Wait()

	n := atomic.LoadInt64(&processed)
	if err := ctx.Err(); err != nil {
		return results, fmt.Errorf("verification stopped after %d of %d records: %w", n, len(records), err)
	}
	log.L(ctx).Infof("Processed %d records", n)
	return results, nil
}

// worker processes record indexes from the work channel
func (c *Client) worker(
	ctx context.Context,
	workChan <-chan int,
	records []*Record,
	results []*Result,
	processed *int64,
) {
	for {
		select {
		case <-ctx.Done():
			return
		case i, ok := <-workChan:
			if !ok {
				return // Channel closed, no more work
			}
			results[i] = c.VerifyRecord(ctx, records[i])
			atomic.AddInt64(processed, 1)
		}
	}
}
