// Package app defines the contract between the kernel and applications.
//
// An app is an immutable Descriptor (name, id, factory) plus the Instance
// its factory builds. The kernel advances an Instance one Step at a time;
// each Step does a bounded unit of work and returns a Signal:
//
//   - Continue: keep running
//   - Exit: return to the default app
//   - Launch(d): tear this instance down and start d
//
// Instances only ever see the System facade. They never hold a driver
// directly, so the kernel can retire everything an instance touched at the
// switch boundary.
//
// Example:
//
//	type counter struct {
//	    sys app.System
//	    n   int
//	}
//
//	func (c *counter) Step(ctx context.Context, snap app.Snapshot) (app.Signal, error) {
//	    c.n++
//	    c.sys.Clear(types.Black)
//	    c.sys.DrawText(fmt.Sprintf("Count: %d", c.n), 10, 10, 1, types.White)
//	    if err := c.sys.Update(); err != nil {
//	        return app.Continue, err
//	    }
//	    if snap.Pressed.Has(keycode.Q) {
//	        return app.Exit, nil
//	    }
//	    return app.Continue, nil
//	}
package app
