// Package pipeline provides a streaming pipeline of external processes.
//
// The pipeline package chains independent executables into one Unix pipe-and-filter
// chain. Each stage in the pipeline is a separate OS process that consumes the output
// stream of its predecessor and produces the input stream of its successor. The
// coordinator itself performs no computation on the data; it only wires the streams
// and waits for the stages to finish.
//
// One of the key benefits of this design is that the whole pipeline streams: no stage
// waits for a predecessor to finish before starting, only for data availability on its
// input, so a document is never buffered in memory by the coordinator. The anonymous
// pipes between adjacent stages have exactly one writer and one reader each, so the
// OS-level stream itself provides all required synchronisation.
//
// The pipeline stops on the first encountered failure. A stage exiting with a non-zero
// status marks the whole run as failed and its exit status is surfaced to the caller;
// downstream stages observe end-of-stream on their input and exit naturally.
package pipeline
