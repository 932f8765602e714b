// Package render groups the diagram renderers.
//
// Point sets are exported as data by package io; drawing them is left to the
// consumer. What is rendered here are diagrams about the generators
// themselves:
//
//   - [transitions]: the selection-rule transition graph of the chaos game,
//     as Graphviz DOT or SVG.
//
// [transitions]: github.com/matzehuels/chaostower/pkg/render/transitions
package render
