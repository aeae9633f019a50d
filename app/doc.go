// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package app drives an ungrund application: it owns the one-time platform
// setup, routes window input to handlers and runs the render loop on top of
// a render.Manager.
//
// The windowing library is supplied by the host through two small
// interfaces. System is initialized once per process with Init and torn
// down with Terminate; Window is polled by Run:
//
//	if err := app.Init(sys); err != nil {
//	    log.Fatal(err)
//	}
//	defer app.Terminate()
//
//	mgr, _ := render.NewManager(ctx)
//	err := app.Run(context.Background(), win, mgr, app.RendererFunc(
//	    func(fc *app.FrameContext) error {
//	        pass := fc.Frame.BeginPass(&gputypes.Color{A: 1})
//	        defer pass.End()
//	        return nil
//	    }))
//
// Input arrives through an Input dispatcher that the window layer feeds;
// handlers are single-method interfaces called synchronously on the render
// thread.
package app
