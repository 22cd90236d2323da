// Package render is the composition pipeline's front door. It turns a
// Request into probed sources, a resolved timeline, a compiled filter graph,
// and finally an encode job, persisting the outcome to the job history when
// one is configured.
package render
