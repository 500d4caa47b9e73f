// Package statsview serves live charts of the Go runtime (heap,
// goroutines, GC pauses) while the emulator runs.
package statsview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// DefaultAddress is the address the stats server listens on.
const DefaultAddress = "localhost:12600"

const url = "/debug/statsview"

// Run serves the stats view on addr until ctx is cancelled,
// announcing the URL on output.
func Run(ctx context.Context, addr string, output io.Writer) error {
	if addr == "" {
		addr = DefaultAddress
	}
	viewer.SetConfiguration(viewer.WithAddr(addr))
	mgr := statsview.New()

	go func() {
		<-ctx.Done()
		mgr.Stop()
	}()

	fmt.Fprintf(output, "stats server available at http://%s%s\n", addr, url)
	if err := mgr.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
