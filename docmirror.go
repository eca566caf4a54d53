// Package docmirror mirrors a documentation site, or a directory of HTML
// files, into a tree of Markdown files.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, htmltomarkdown/).
package docmirror
