// Package fractal renders escape-time and root-finding fractals into a raster.
//
// # Overview
//
// A render is described by a [Config]: the fractal [Variant], image size,
// viewport centre and zoom, iteration limits and the palette. [NewEngine]
// validates the configuration and prepares the pipeline:
//
//	cfg := fractal.DefaultConfig()
//	cfg.Variant = fractal.Julia
//	cfg.Width, cfg.Height = 1920, 1080
//
//	eng, err := fractal.NewEngine(cfg, fractal.WithParallel(true))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := eng.Render(); err != nil {
//	    log.Fatal(err)
//	}
//	_ = eng.Raster().Save("julia.bmp")
//
// # Pipeline
//
// Rendering has two strictly ordered phases. Compute maps every pixel to a
// point of the complex plane, runs the fractal iteration and records a
// [PixelResult] together with the largest iteration count seen. Paint turns
// each stored result into a colour, normalised by that maximum, and writes it
// into the raster. Paint before a successful Compute fails with
// [ErrNotComputed].
//
// Both phases can run sequentially in row-major order or spread across image
// columns on a worker pool. The output is byte-identical either way.
//
// # Coordinate System
//
//   - Origin (0,0) at the top-left pixel
//   - X increases right, Y increases down
//   - The plane is 8/zoom units wide; its height follows the image aspect ratio
package fractal
