// Package validate sanitizes untrusted input before it reaches the lyrics
// cache or the resolver.
//
// Queries are collapsed to a single line and bounded in length, lyrics text is
// stripped of control characters and excess blank lines, and resolver locators
// must end in the "-lyrics" suffix to be accepted. The keyword normalization
// used for substring search and fuzzy matching also lives here so the store
// and the lookup scorer agree on token boundaries.
package validate
