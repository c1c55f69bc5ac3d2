// Package preflight provides readiness checks for the external tools,
// directories, and API credentials the pipeline depends on.
//
// The CLI "shuttle preflight" command runs RunAll before an operator starts
// a long processing run: catching a dead API key or a missing ffmpeg up
// front is much cheaper than discovering it chunks into a run. Optional
// checks cover degradable features and never fail the command.
package preflight
