// Package model defines the domain types shared by the bootstrap-tool packages.
//
// Nothing in this package is persisted. Every value lives for a single
// bootstrap run; durable effects (the git repository, package.json, scaffold
// files) are produced by external tools driven from internal/bootstrap.
package model
