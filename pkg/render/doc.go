// Package render defines the renderer contract shared by the output formats
// and a name-keyed registry used by the orchestrator to select one per
// request.
package render
