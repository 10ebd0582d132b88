// Package prompt collects agreement records interactively in the terminal.
package prompt
