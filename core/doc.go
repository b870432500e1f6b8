// Package core implements the editor augmentation layer used by the
// restpad request/response panes: wrap simulation, per-line layout caching,
// viewport culling, line-number gutter layout, search highlight geometry,
// and key-chord interception.
//
// The package never owns text. It observes a host widget's document through
// the Document interface and reproduces the host's word-wrap and metrics
// behavior so that everything it draws on top of the widget (gutter labels,
// highlight rectangles) lands exactly where the host renders the text.
//
// All computation is frame-synchronous and single-threaded: every result is
// a pure function of current document, panel, and metric state, recomputed
// or served from the layout cache within the caller's update/draw cycle.
package core
