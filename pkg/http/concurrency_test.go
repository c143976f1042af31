package http

import (
	"strconv"
	"sync"
	"testing"

	"github.com/shapestone/shape-message/pkg/stream"
)

// Values are shared read-only between goroutines; each goroutine derives
// its own copies. Run with -race.
func TestSharedResponse_ConcurrentDerivation(t *testing.T) {
	base := mustResponse(t, 200,
		WithResponseHeaders(map[string][]string{"X-Base": {"1"}}),
		WithResponseBody(stream.NewString("shared")))
	req := mustRequest(t, "GET", "http://example.com/")

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan string, workers*5)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := strconv.Itoa(i)

			own, err := base.WithAddedHeader("X-Base", id)
			if err != nil {
				errs <- err.Error()
				return
			}
			own, err = own.WithHeader("X-Worker", id)
			if err != nil {
				errs <- err.Error()
				return
			}
			prepared := own.Prepare(req)

			if got := prepared.HeaderLine("X-Worker"); got != id {
				errs <- "X-Worker = " + got + ", want " + id
			}
			if got := prepared.HeaderLine("X-Base"); got != "1, "+id {
				errs <- "X-Base = " + got
			}
			if base.HeaderLine("X-Base") != "1" || base.HasHeader("X-Worker") {
				errs <- "base response was modified"
			}
			if req.WithAttribute("worker", id).Attributes().Len() != 1 {
				errs <- "attribute copy is not independent"
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for e := range errs {
		t.Error(e)
	}
}

func TestSharedResponse_ConcurrentMarshal(t *testing.T) {
	resp := mustResponse(t, 200, WithResponseBody(stream.NewString("shared body")))
	want, err := Marshal(resp)
	if err != nil {
		t.Fatal(err)
	}

	const workers = 64
	var wg sync.WaitGroup
	errs := make(chan string, workers*2)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Marshal(resp)
			if err != nil {
				errs <- err.Error()
				return
			}
			if string(got) != string(want) {
				errs <- "Marshal() = " + strconv.Quote(string(got))
			}
			if s := resp.String(); s != string(want) {
				errs <- "String() = " + strconv.Quote(s)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for e := range errs {
		t.Error(e)
	}
}
