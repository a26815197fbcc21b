// Package sink writes rendered sheets to disk.
//
// # Files
//
// Every page N produces two PNG files, layout_sheet_NN_front.png and
// layout_sheet_NN_back.png, tagged with the print resolution so that
// printing at 100% reproduces the physical size. [Clean] removes the files of
// a previous run before a new one starts.
//
// # Print order
//
// A single-sided printer prints the fronts first. The printed stack is then
// flipped left-to-right and fed back in, which reverses its page order, so the
// backs must be printed last page first. [PrintOrder] lists the files in that
// order and [RenderPDF] produces one document that follows it.
//
// # Manifest
//
// [BuildManifest] records a run (geometry, pages, rows, placements, rejected
// and skipped inputs) for auditing and for the plan command's JSON and YAML
// output.
package sink
