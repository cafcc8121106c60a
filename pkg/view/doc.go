// Package view is the presentation layer for toasts.
//
// Container turns a toast.Snapshot into a vdom tree: a fixed container
// anchored according to the snapshot's position, holding one animated
// item per record. Each item carries the transition classes for its
// position (fade plus a slide from the nearest screen edge) and a
// data-state of "enter" or "leave" depending on the record's visibility.
//
// Removing a toast after its exit transition is the presentation layer's
// job. Browsers report it through the live host; headless hosts use an
// Exiter, which removes hidden toasts after LeaveDuration.
//
// Success, Error, Warning and Info show ready-made message cards:
//
//	view.Success(handle, "Project deleted")
//	view.WithTitle(handle, view.LevelInfo, "Settings", "Your changes have been saved.")
package view
