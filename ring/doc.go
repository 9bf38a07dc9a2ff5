// Package ring
// Author: momentics <momentics@gmail.com>
//
// Fixed-capacity circular buffer for statically provisioned memory.
// The caller hands over a pre-allocated slice once; afterwards Write, Read
// and Peek run in O(1), never allocate and never block. Every failure is an
// api sentinel error, never a panic:
//
//	storage := make([]Sample, 32)
//	rb, err := ring.New(storage)
//	if err != nil {
//		return err
//	}
//	if err := rb.Write(&s); errors.Is(err, api.ErrBufferFull) {
//		// drop or retry, caller's policy
//	}
//
// A Buffer is not safe for concurrent use. A producer and a consumer living
// on different goroutines must serialize access themselves.
package ring
