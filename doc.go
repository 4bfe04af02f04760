// Package skiroute finds the best downhill ski run on a rectangular
// elevation map: the longest run first, and among equally long runs the
// steepest one.
//
// 🚀 What is skiroute?
//
//	A small pipeline of focused packages:
//		• gridgraph: immutable elevation grid, 4-neighbour access, digests
//		• descent: root detection and per-root descent DAGs
//		• topo: topological order of a descent DAG (Kahn)
//		• longest: longest-path DP with predecessor reconstruction
//		• steepest: global longest filter, then steepest filter
//		• skiing: concurrent end-to-end Solve over every root
//		• mapfile: plain-text map reader and writer
//		• store: run persistence (memory, Badger, PostgreSQL)
//		• server: HTTP service over the solver and a store
//
// ✨ Rules of the slope
//
//   - A skier moves north, south, east or west, always to a strictly lower cell.
//   - A root is a cell with no strictly higher neighbour; every run starts at one.
//   - Length counts segments; drop is first elevation minus last.
//
// Quick start:
//
//	g, _ := mapfile.ParseFile("map.txt")
//	rep, err := skiing.Solve(ctx, g)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(rep.Routes[0].PathValues)
//
// The skiroute command (cmd/skiroute) wraps the same pipeline for one-shot
// solves and for the HTTP service.
package skiroute
