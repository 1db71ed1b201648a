// Package resolution turns a configuration's declared dependencies into a
// concrete module graph. A Strategy carries the per-configuration policy
// (conflict handling, forced versions); a Factory produces one Strategy per
// configuration; Resolver walks a repository to build the graph.
package resolution
