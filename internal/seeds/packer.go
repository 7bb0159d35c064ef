package seeds

import (
	"fmt"

	"github.com/edgi-govdata-archiving/seedgen/pkg/failure"
)

/*
Responsibilities

- Split oversized groups into fixed-size consecutive chunks
- Bin-pack the remaining groups whole into bounded batches
- Produce deterministic batch names and contents

Packing Semantics

- A group with >= targetSize URLs is oversized and is split on its own
- Small groups are never split; they are packed whole or deferred
- Every input URL lands in exactly one output batch
*/

// Pack turns domain groups into bounded-size batches. targetSize caps
// the URL count of bin-packed batches; singleGroupSize caps the chunks
// an oversized group is split into and defaults to targetSize when 0.
// The input Groups is not modified.
//
// Phase 1 walks groups in iteration order and pulls out every group
// whose URL count is >= targetSize (>= rather than >, so a group that
// exactly fills a batch never re-enters bin packing and progress is
// guaranteed even when targetSize == singleGroupSize). Each such group
// is cut into consecutive singleGroupSize chunks named "<key>-<n>".
//
// Phase 2 repeatedly builds one batch by scanning the remaining groups
// in order, greedily taking any whole group that still fits in the
// batch's remaining capacity and skipping ones that would overflow.
// A batch closes when capacity hits exactly zero or the scan ends.
// Batches from this phase are named "other-<n>".
func Pack(groups *Groups, targetSize int, singleGroupSize int) ([]Batch, failure.ClassifiedError) {
	if targetSize <= 0 {
		return nil, &SeedError{
			Message: fmt.Sprintf("target size %d, must be positive", targetSize),
			Cause:   ErrCauseInvalidPackSize,
		}
	}
	if singleGroupSize == 0 {
		singleGroupSize = targetSize
	}
	if singleGroupSize < 0 {
		return nil, &SeedError{
			Message: fmt.Sprintf("single group size %d, must be positive", singleGroupSize),
			Cause:   ErrCauseInvalidPackSize,
		}
	}

	var batches []Batch

	remaining := NewGroups()
	for _, key := range groups.Keys() {
		urls := groups.Get(key)
		if len(urls) < targetSize {
			for _, url := range urls {
				remaining.Add(key, url)
			}
			continue
		}

		for index, chunk := range chunked(urls, singleGroupSize) {
			batches = append(batches, NewBatch(
				fmt.Sprintf("%s-%d", key, index+1),
				chunk,
				true,
			))
		}
	}

	otherIndex := 0
	for remaining.Len() > 0 {
		var urls []string
		capacity := targetSize
		for _, key := range remaining.Keys() {
			group := remaining.Get(key)
			if len(group) > capacity {
				// Leave it for a later batch rather than split it.
				continue
			}
			remaining.Remove(key)
			urls = append(urls, group...)
			capacity -= len(group)
			if capacity == 0 {
				break
			}
		}

		otherIndex++
		batches = append(batches, NewBatch(
			fmt.Sprintf("other-%d", otherIndex),
			urls,
			false,
		))
	}

	return batches, nil
}

// chunked slices urls into consecutive pieces of at most size elements.
func chunked(urls []string, size int) [][]string {
	var chunks [][]string
	for start := 0; start < len(urls); start += size {
		end := start + size
		if end > len(urls) {
			end = len(urls)
		}
		chunks = append(chunks, urls[start:end])
	}
	return chunks
}
