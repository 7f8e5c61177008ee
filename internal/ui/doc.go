// Package ui contains the Bubble Tea program that hosts a mounted page in the
// terminal. The controllers never learn they are running in a terminal: the
// model owns an in-memory document and turns terminal input into document
// events, then renders the document state back as text.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. Each tea.Msg is
//     routed through a typed handler registry so key presses, mouse clicks,
//     window size changes and timer ticks each land in a focused function.
//   - Key presses become keydown/keyup events on the active element
//     (internal/ui/input.go). Tab and Enter/Space fall back to the browser
//     defaults (focus movement and activation) when no listener prevented
//     them (internal/ui/navigation.go).
//   - Mouse clicks are resolved against the row map recorded by the last
//     render and dispatched as click events on the node drawn there.
//
// Timers:
//   - Controllers schedule delayed work on a schedule.Queue. After every
//     update the model arms a tea.Tick for the earliest pending task and
//     drains due tasks when the tick arrives, so every callback runs on the
//     Update goroutine.
//
// Rendering:
//   - View reads the document only (classes, attributes, focus and text), so
//     what is drawn is exactly what a screen reader or stylesheet would see.
//     Long option lists scroll through internal/ui/state viewports that keep
//     the focused option visible.
package ui
