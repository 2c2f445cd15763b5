// Package build runs the site pipeline: load the configuration, discover
// content, check links and render the generator artifacts.
//
// The CLI render command and the watcher both route through Service.
package build
