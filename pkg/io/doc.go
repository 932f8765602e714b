// Package io writes generated point sequences for other tools.
//
// Two formats are supported:
//
//   - JSON: one object holding the run metadata, the engine configuration,
//     the points and the choice made at each step.
//   - CSV: one row per point, "index,x,y,choice". The start point has an empty
//     choice.
//
// Use [Write] to pick the format by name, or [WriteJSON] / [WriteCSV] directly:
//
//	d := io.Dump{Engine: "chaos", Config: seq.Config, Points: seq.Points, Choices: seq.Choices}
//	if err := io.Export(d, "sierpinski.csv", "csv"); err != nil {
//	    log.Fatal(err)
//	}
//
// The Z coordinate is omitted from CSV; engines never change it.
package io
