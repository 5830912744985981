// Package ui contains the Bubble Tea program that powers the console. The
// Model type focuses on message orchestration, while dedicated helpers own
// input, popups, select mode, editors and rendering.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a
//     focused function.
//   - Key presses go to the handler for the active Mode: the input editor,
//     a popup, output select mode, or the editor overlay.
//   - Inbound host traffic arrives through a tea.Cmd that waits on the
//     session's event channel. Each message is handed to the dispatcher,
//     whose tag table calls one recv* method in routes.go. The pump re-arms
//     itself after every event.
//
// State ownership:
//   - The output document (internal/output) holds every rendered line, the
//     pinned pane and the interactor elements.
//   - History lives in internal/state; popups use internal/ui/state.Popup.
//   - Editor controllers are created for LiveEditor interactors and are
//     registered in a weak pool so host broadcasts reach every open view.
//     Controllers whose element leaves the document are closed after each
//     update.
//
// Host calls (submit, callbacks, editor saves, popup population) run as
// commands through the internal/ui/command bus and report back with result
// messages, so Update never blocks.
package ui
