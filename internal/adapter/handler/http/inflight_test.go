package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func tokenContext(token string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(tokenKey, token)
	return c
}

// parkedLoad starts a load that blocks until the returned release is called.
func parkedLoad(t *testing.T, g *ActionGuard, c *gin.Context, key string) (release func(), done <-chan []int) {
	t.Helper()
	started := make(chan struct{})
	unblock := make(chan struct{})
	out := make(chan []int, 1)
	go func() {
		got, _ := load(g, c, key, func() ([]int, error) {
			close(started)
			<-unblock
			return []int{1}, nil
		})
		out <- got
	}()
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("parked load never started")
	}
	var once sync.Once
	return func() { once.Do(func() { close(unblock) }) }, out
}

func TestTryAcquire(t *testing.T) {
	g := NewActionGuard()

	release, ok := g.TryAcquire("vehiculo.guardar")
	if !ok {
		t.Fatal("first acquire should succeed")
	}
	if _, ok := g.TryAcquire("vehiculo.guardar"); ok {
		t.Fatal("second acquire of the same action should fail while the first is held")
	}
	other, ok := g.TryAcquire("taller.guardar")
	if !ok {
		t.Fatal("a different action should not be blocked")
	}
	other()

	release()
	again, ok := g.TryAcquire("vehiculo.guardar")
	if !ok {
		t.Fatal("acquire after release should succeed")
	}
	again()
}

func TestSingleRejectsWhileInFlight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	g := NewActionGuard()

	calls := 0
	r := gin.New()
	r.POST("/x", g.Single("x", func(c *gin.Context) {
		calls++
		c.Status(http.StatusNoContent)
	}))

	release, _ := g.TryAcquire("x")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 while in flight, got %d", w.Code)
	}
	if calls != 0 {
		t.Fatalf("handler should not run, ran %d times", calls)
	}

	release()
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 after release, got %d", w.Code)
	}
	if calls != 1 {
		t.Fatalf("expected one call, got %d", calls)
	}
}

func TestLoad(t *testing.T) {
	g := NewActionGuard()
	c := tokenContext("tok")

	got, err := load(g, c, "numbers", func() ([]int, error) { return []int{1, 2}, nil })
	if err != nil {
		t.Fatalf("load() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %v", got)
	}

	boom := errors.New("boom")
	got, err = load(g, c, "numbers", func() ([]int, error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil on error, got %v", got)
	}
}

func TestLoadNotSharedAcrossTokens(t *testing.T) {
	g := NewActionGuard()
	release, first := parkedLoad(t, g, tokenContext("token-a"), "numbers")
	defer release()

	got, err := load(g, tokenContext("token-b"), "numbers", func() ([]int, error) { return []int{2}, nil })
	if err != nil {
		t.Fatalf("load() error: %v", err)
	}
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("second token joined the first load: %v", got)
	}

	release()
	if got := <-first; len(got) != 1 || got[0] != 1 {
		t.Fatalf("first load got %v", got)
	}
}

func TestLoadNotSharedAcrossWrites(t *testing.T) {
	g := NewActionGuard()
	c := tokenContext("tok")
	release, first := parkedLoad(t, g, c, "numbers")
	defer release()

	g.Invalidate()
	got, err := load(g, c, "numbers", func() ([]int, error) { return []int{2}, nil })
	if err != nil {
		t.Fatalf("load() error: %v", err)
	}
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("load after a write joined the earlier load: %v", got)
	}

	release()
	<-first
}

func TestSingleInvalidatesOnlyOnSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	g := NewActionGuard()

	r := gin.New()
	r.POST("/ok", g.Single("ok", func(c *gin.Context) { c.Status(http.StatusCreated) }))
	r.POST("/bad", g.Single("bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) }))

	before := g.gen.Load()
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/bad", nil))
	if g.gen.Load() != before {
		t.Fatal("a failed write should not invalidate loads")
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/ok", nil))
	if g.gen.Load() == before {
		t.Fatal("a successful write should invalidate loads")
	}
}
