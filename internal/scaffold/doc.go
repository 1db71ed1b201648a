// Package scaffold generates starter build files and module files from
// embedded templates. It powers the "buildconf init" command. Every
// generated file is validated against the manifest schema.
package scaffold
