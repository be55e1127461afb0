// Package listview provides a scrolling list component for Bubble Tea
// models. Only the rows inside the viewport are rendered.
package listview
