// Package measure evaluates codec efficiency on synthetic workloads.
//
// It encodes a workload, verifies the decoded stream against the input with
// a 64-bit digest, and reports size metrics: words emitted, bits per value,
// and the effect of general-purpose compression on the finished stream.
//
// Typical use is offline benchmarking and regression tracking of encoding
// density across releases:
//
//	for _, w := range measure.DefaultWorkloads() {
//	    res, err := measure.Run(w)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("%-16s %7d values %8d bytes %6.2f bits/value\n",
//	        res.Workload, res.Values, res.EncodedBytes, res.BitsPerValue)
//	}
package measure
