// Package configuration implements the named configuration registry of a
// build unit.
//
// A Configuration is a named, mutable scope holding dependency declarations
// and a resolution strategy. A Container owns every named configuration of
// one project: it creates them on first request, rejects duplicate names,
// wires the same shared collaborators (resolver, listener manager, metadata
// provider, strategy factory) into each one, and answers lookups with typed
// errors.
//
// Detached configurations are built with the same collaborators but live
// outside the container's namespace. Each one sees a single-slot provider
// holding only itself, and owns copies of the dependencies it was seeded with.
//
//	c, _ := configuration.New(project.Root, collaborators)
//	compile, _ := c.Create("compile")
//	compile.Dependencies().Add(dep)
//	adhoc, _ := c.Detached(dep)
package configuration
