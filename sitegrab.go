// Package sitegrab extracts structured content (title, headings, paragraphs,
// lists and code blocks) from a single web page per operator-supplied URL.
// Pages guarded by CAPTCHA or JavaScript verification are resolved either by
// the operator in a visible browser or automatically through an external
// solving service, and the normalized result is appended to a record store.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, rod/, goquery/).
package sitegrab
