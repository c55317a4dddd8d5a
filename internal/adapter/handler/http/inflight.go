package http

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

// Load keys. A key always maps to the same result type.
const (
	loadVehicles  = "vehiculos"
	loadWorkshops = "talleres"
	loadRecords   = "registros"
	loadUsers     = "usuarios"
	loadRoles     = "roles"
)

// ActionGuard lets one instance of each write action run at a time and
// collapses identical concurrent loads into one upstream call. Loads are only
// shared between requests carrying the same token, and never across a
// successful write.
type ActionGuard struct {
	mu      sync.Mutex
	actions map[string]*semaphore.Weighted
	loads   singleflight.Group
	gen     atomic.Uint64
}

func NewActionGuard() *ActionGuard {
	return &ActionGuard{actions: make(map[string]*semaphore.Weighted)}
}

// TryAcquire reports false when action is already in flight. The returned
// release must be called once the action completes.
func (g *ActionGuard) TryAcquire(action string) (func(), bool) {
	g.mu.Lock()
	sem, ok := g.actions[action]
	if !ok {
		sem = semaphore.NewWeighted(1)
		g.actions[action] = sem
	}
	g.mu.Unlock()

	if !sem.TryAcquire(1) {
		return nil, false
	}
	return func() { sem.Release(1) }, true
}

// Load runs fn once for all concurrent callers sharing key.
func (g *ActionGuard) Load(key string, fn func() (interface{}, error)) (interface{}, error) {
	v, err, _ := g.loads.Do(key, fn)
	return v, err
}

// Invalidate makes later loads start a fresh upstream call instead of joining
// one already in flight.
func (g *ActionGuard) Invalidate() {
	g.gen.Add(1)
}

// scope builds the shared-load key for the current request from the collection,
// the write generation and the session token.
func (g *ActionGuard) scope(c *gin.Context, key string) string {
	sum := sha256.Sum256([]byte(c.GetString(tokenKey)))
	return key + ":" + strconv.FormatUint(g.gen.Load(), 10) + ":" + hex.EncodeToString(sum[:8])
}

// Single wraps a write handler so a second trigger while the first is pending
// gets 409.
func (g *ActionGuard) Single(action string, handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		release, ok := g.TryAcquire(action)
		if !ok {
			newNotification(c, http.StatusConflict, severityWarn, "Aviso", "La acción ya está en curso")
			return
		}
		defer release()
		handler(c)
		if c.Writer.Status() < http.StatusBadRequest {
			g.Invalidate()
		}
	}
}

// upstream detaches the fleet API call from the console request. A client that
// goes away does not abort a write already sent.
func upstream(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}

func load[T any](g *ActionGuard, c *gin.Context, key string, fn func() (T, error)) (T, error) {
	v, err := g.Load(g.scope(c, key), func() (interface{}, error) { return fn() })
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
