package middlewares

import (
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// Guard adalah predikat allow/deny atas satu request. Guard hanya
// mengklasifikasi, tidak pernah mengubah state. nil berarti lolos.
type Guard func(c *gin.Context) error

// AllOf lolos jika SEMUA guard lolos; berhenti di kegagalan pertama.
func AllOf(guards ...Guard) Guard {
	return func(c *gin.Context) error {
		for _, g := range guards {
			if err := g(c); err != nil {
				return err
			}
		}
		return nil
	}
}

// AnyOf lolos jika SALAH SATU guard lolos; berhenti di yang pertama lolos.
// Kalau semua gagal, error guard pertama yang dikembalikan.
func AnyOf(guards ...Guard) Guard {
	return func(c *gin.Context) error {
		var firstErr error
		for _, g := range guards {
			err := g(c)
			if err == nil {
				return nil
			}
			if firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	}
}

// Require membungkus rantai guard menjadi middleware gin. Penolakan
// selalu dinaikkan sebagai response terstruktur, tidak pernah ditelan.
func Require(guards ...Guard) gin.HandlerFunc {
	chain := AllOf(guards...)
	return func(c *gin.Context) {
		if err := chain(c); err != nil {
			utils.RespondError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireLogined: staff ATAU guest, pokoknya ada sesi terautentikasi.
func RequireLogined(c *gin.Context) error {
	if _, ok := GetIdentity(c); !ok {
		return utils.ErrUnauthenticated("login required")
	}
	return nil
}

// RequireOwner: staff dengan role Owner.
func RequireOwner(c *gin.Context) error {
	identity, ok := GetIdentity(c)
	if !ok {
		return utils.ErrUnauthenticated("login required")
	}
	if !identity.IsStaff() || identity.Role != models.RoleOwner {
		return utils.ErrForbidden("owner access required")
	}
	return nil
}

// RequireEmployee: staff dengan role Employee.
func RequireEmployee(c *gin.Context) error {
	identity, ok := GetIdentity(c)
	if !ok {
		return utils.ErrUnauthenticated("login required")
	}
	if !identity.IsStaff() || identity.Role != models.RoleEmployee {
		return utils.ErrForbidden("employee access required")
	}
	return nil
}

// RequireGuest: sesi guest meja.
func RequireGuest(c *gin.Context) error {
	identity, ok := GetIdentity(c)
	if !ok {
		return utils.ErrUnauthenticated("login required")
	}
	if !identity.IsGuest() {
		return utils.ErrForbidden("guest access required")
	}
	return nil
}

// PauseState adalah flag maintenance process-wide. Di-inject eksplisit ke
// router, bukan singleton ambient.
type PauseState struct {
	mu     sync.RWMutex
	paused bool
}

func NewPauseState() *PauseState {
	return &PauseState{}
}

func (p *PauseState) Set(paused bool) {
	p.mu.Lock()
	p.paused = paused
	p.mu.Unlock()
}

func (p *PauseState) Paused() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.paused
}

// Gate menolak semua request non-Owner selama pause aktif. Owner tetap
// lewat supaya bisa membereskan masalah lalu membuka kembali.
func (p *PauseState) Gate() Guard {
	return func(c *gin.Context) error {
		if !p.Paused() {
			return nil
		}
		identity, ok := GetIdentity(c)
		if ok && identity.IsStaff() && identity.Role == models.RoleOwner {
			return nil
		}
		return utils.ErrServiceUnavailable("service is paused for maintenance")
	}
}
