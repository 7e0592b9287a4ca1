package hooks

import "testing"

func TestPriorityOrderingAndRegistrationTieBreak(t *testing.T) {
	r := New(nil)
	var order []string

	r.Register(BeforeSearch, 10, "second", func(ctx *Context) *Context {
		order = append(order, "second")
		return ctx
	})
	r.Register(BeforeSearch, 5, "first", func(ctx *Context) *Context {
		order = append(order, "first")
		return ctx
	})
	r.Register(BeforeSearch, 10, "third", func(ctx *Context) *Context {
		order = append(order, "third")
		return ctx
	})

	r.Dispatch(NewContext(BeforeSearch))

	want := []string{"first", "second", "third"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

// TestHandlerIsolation is P7: a handler that panics leaves the
// surrounding dispatch identical to the scenario where it was never
// registered.
func TestHandlerIsolation(t *testing.T) {
	withoutPanic := New(nil)
	withoutPanic.Register(BeforeSearch, 0, "ok", func(ctx *Context) *Context {
		ctx.Data["seen"] = true
		return ctx
	})
	base := NewContext(BeforeSearch)
	base.Data["query"] = "andrew"
	wantResult := withoutPanic.Dispatch(base)

	withPanic := New(nil)
	withPanic.Register(BeforeSearch, -1, "panicker", func(ctx *Context) *Context {
		panic("boom")
	})
	withPanic.Register(BeforeSearch, 0, "ok", func(ctx *Context) *Context {
		ctx.Data["seen"] = true
		return ctx
	})
	got := withPanic.Dispatch(NewContext(BeforeSearch))

	if got.Data["seen"] != wantResult.Data["seen"] {
		t.Fatalf("panic handler was not isolated: got %v want %v", got.Data, wantResult.Data)
	}
	if got.Abort {
		t.Fatalf("panicking handler must not abort the chain")
	}
}

func TestAbortStopsChain(t *testing.T) {
	r := New(nil)
	ran := false
	r.Register(BeforeSearch, 0, "aborter", func(ctx *Context) *Context {
		ctx.Abort = true
		return ctx
	})
	r.Register(BeforeSearch, 1, "later", func(ctx *Context) *Context {
		ran = true
		return ctx
	})
	ctx := r.Dispatch(NewContext(BeforeSearch))
	if !ctx.Abort {
		t.Fatalf("expected abort to be set")
	}
	if ctx.AbortedBy != "aborter" {
		t.Fatalf("expected AbortedBy=aborter, got %q", ctx.AbortedBy)
	}
	if ran {
		t.Fatalf("handler after abort must not run")
	}
}

func TestDisabledRuntimeShortCircuits(t *testing.T) {
	r := New(nil)
	r.SetEnabled(false)
	called := false
	r.Register(BeforeSearch, 0, "h", func(ctx *Context) *Context {
		called = true
		return ctx
	})
	r.Dispatch(NewContext(BeforeSearch))
	if called {
		t.Fatalf("disabled runtime must not invoke handlers")
	}
}
