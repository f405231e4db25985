// Package npm drives the Node.js package manager for the bootstrap
// pipeline and probes the package registry for the existence of names the
// user asked to install.
package npm
