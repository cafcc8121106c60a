// Package live serves a toaster to browsers.
//
// A Server renders the toast container on the first request, then keeps
// every connected page in sync over a websocket: each published snapshot
// is sent as a full render frame, and the page reports dismiss clicks and
// finished exit transitions back as small JSON frames.
//
//	t := toast.New(toast.WithPosition(toast.TopRight))
//	defer t.Close()
//
//	srv := live.New(t, live.WithLogger(logger))
//	err := srv.ListenAndServe(ctx, "localhost:4000")
//
// A JSON API under /api/toasts lets other processes raise and dismiss
// toasts without a browser.
package live
