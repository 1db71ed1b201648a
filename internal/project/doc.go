// Package project loads a build file and exposes its configurations.
//
// A project is identified by a Path (":" for the root project, ":app" or
// ":services:api" below it). Configuration names are qualified against that
// path, so configuration "runtime" of project ":app" has path ":app:runtime".
package project
