// Package repository reads module metadata from a local file repository laid
// out as <root>/<group>/<name>/<version>/module.yaml. Version listings and
// parsed module manifests are cached in memory with a TTL so a single
// resolution does not rescan the same directories.
package repository
