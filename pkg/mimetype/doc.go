// Package mimetype provides an explicit, injectable extension-to-MIME-type
// mapping for static file serving.
//
// The table is plain data rather than process-wide state: construct one at
// startup (Default, ParseYAML, or a literal) and hand it to the components
// that need it. Unrecognized extensions resolve to application/octet-stream.
package mimetype
