// Package compress provides the compression codecs used for snapshot
// payloads.
//
// Snapshot bodies are small, repetitive string tables (variable and range
// names), which compress well with any of the supported algorithms. Zstd
// gives the best ratio, S2 and LZ4 trade ratio for speed, and None bypasses
// compression entirely for debugging and tiny payloads.
package compress
