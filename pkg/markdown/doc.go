// Package markdown compiles a constrained Markdown dialect into an ordered
// sequence of positional edit operations for the Google Docs batchUpdate
// model.
//
// The dialect covers ATX headings (levels 1-3), bullet / numbered / checkbox
// list items, pipe tables with a separator row, horizontal rules, and inline
// bold, italic, and code spans. Everything else is treated as plain
// paragraph text. The compiler addresses content by absolute UTF-16
// code-unit offsets, tracking a running cursor so that style edits always
// reference ranges already covered by earlier text insertions.
//
// The pipeline is classify -> assemble -> compile: ClassifyAll tags each
// source line, Assemble groups lines into logical blocks, and Compile walks
// the blocks emitting ops. All three stages are deterministic and
// allocation-local; nothing is shared across calls.
package markdown
