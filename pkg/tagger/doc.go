// Package tagger resolves run modes and assembles the POS tagging
// pipeline: [tokenizer] -> feature extraction -> [CRF tagging -> output
// formatting]. The linguistic work happens in external collaborator
// executables reached through line-based UTF-8 streams; this package only
// decides which of them run, with which flags, and in which order.
package tagger
