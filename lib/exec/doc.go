// Package exec implements the command pipeline: the two-level tokenizer,
// the keyword dispatch trie that validates argument counts and numeric
// tokens before building typed Op values, and the executor that runs a
// statement batch against the stores with last-reply-wins semantics.
package exec
