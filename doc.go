/*
Package brush drives a paint bot on a shared pixel canvas.

A bot is a cursor on a remote canvas service. It can move one cell at a
time, select one of sixteen palette colors and paint the cell under it.
brush turns shapes into those primitive commands:

  - pkg/curve samples parametric curves (circles, waves, spiral paths) as
    lazy sequences of integer canvas positions.
  - pkg/movement plans the unit moves between two positions.
  - pkg/draw runs a session that walks a curve and paints it, one command
    at a time, threading the state reported by the service.

The Client in this package adds the bot lifecycle around a session: it
loads the bot identity from an IdentityStore or registers a new bot,
optionally locks the bot against other processes, and deregisters it.

# Usage

	ctx := context.Background()

	client, err := brush.New("Bob")
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close(ctx)

	// Registers on first use, then draws a circle around the canvas center.
	if _, err := client.Draw(ctx, draw.CircleShape{Radius: 10}); err != nil {
		log.Fatal(err)
	}

The service URL defaults to http://localhost:31173/. Use WithConnector to
point the client at another service, or at an in-memory canvas:

	canvas, _ := memory.NewCanvas(domain.CanvasDimensions{Width: 80, Height: 40})
	client, _ := brush.New("Bob",
		brush.WithConnector(canvas),
		brush.WithIdentityStore(memory.NewIdentityStore()),
	)
*/
package brush
