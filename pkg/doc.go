// Package pkg provides the core libraries for hierpart.
//
// # Overview
//
// Hierpart represents hierarchical partitions (trees of nested sets over a
// shared universe of elements) and compares them with hierarchical mutual
// information. The pkg directory is organized into four areas:
//
//  1. Domain: [hierpart] (the tree) and [hmi] (the comparison)
//  2. Files: [io] (JSON, YAML and paths formats) and [render] (Graphviz)
//  3. Infrastructure: [cache], [config], [errors], [observability], [buildinfo]
//  4. Orchestration: [pipeline] (load, fingerprint, cache, compare) and
//     [server] (HTTP API)
//
// # Architecture
//
// The typical data flow:
//
//	tree files / request bodies
//	         ↓
//	    [io] package (decode into a Partition)
//	         ↓
//	    [pipeline] package (fingerprint + cache lookup)
//	         ↓
//	    [hmi] package (cross and self information, normalization)
//	         ↓
//	    CLI output / JSON response
//
// # Quick Start
//
//	x, _ := hierpart.New([]string{"a", "b", "c", "d"})
//	x.AddChild(x.Root(), []string{"a", "b"})
//	x.AddChild(x.Root(), []string{"c", "d"})
//
//	y, _ := io.Import("y.json")
//
//	score, err := hmi.Normalized(x, y)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(score.Normalized)
//
// [hierpart]: github.com/matzehuels/hierpart/pkg/hierpart
// [hmi]: github.com/matzehuels/hierpart/pkg/hmi
// [io]: github.com/matzehuels/hierpart/pkg/io
// [render]: github.com/matzehuels/hierpart/pkg/render
// [cache]: github.com/matzehuels/hierpart/pkg/cache
// [config]: github.com/matzehuels/hierpart/pkg/config
// [errors]: github.com/matzehuels/hierpart/pkg/errors
// [observability]: github.com/matzehuels/hierpart/pkg/observability
// [buildinfo]: github.com/matzehuels/hierpart/pkg/buildinfo
// [pipeline]: github.com/matzehuels/hierpart/pkg/pipeline
// [server]: github.com/matzehuels/hierpart/pkg/server
package pkg
