// Package metrics is the deterministic measurement core: raw lyrics text in,
// character, word, and subword token counts plus a content hash out.
//
// Nothing here touches the network apart from the one-time vocabulary
// download inside the tokenizer library; Compute itself has no side effects
// and no failure mode.
package metrics
