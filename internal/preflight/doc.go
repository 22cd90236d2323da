// Package preflight provides readiness checks for the filesystem paths and
// external binaries a render depends on.
//
// These checks run in two contexts:
//   - The renderer calls RunAll before compiling a job, so a doomed encode
//     fails in milliseconds instead of after spawning subprocesses.
//   - The CLI "clipforge deps" command uses the same list to display
//     host readiness.
package preflight
