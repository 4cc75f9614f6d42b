package core

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ServiceConfig holds the tunables of a Service.
type ServiceConfig struct {
	// DefaultPageSize is the list limit used when none is requested (default: 20)
	DefaultPageSize int

	// BcryptCost is the cost used for hashed fields (default: bcrypt.DefaultCost)
	BcryptCost int

	// Audit receives create, update and delete entries (default: LogAuditSink)
	Audit AuditSink
}

// Service provides list, view and mutation operations over every
// registered entity. The gateway is the only shared resource.
type Service struct {
	gw         Gateway
	pager      *Pager
	locator    *Locator
	audit      AuditSink
	bcryptCost int
}

// NewService creates a Service that executes all queries through gw.
func NewService(gw Gateway, cfg ServiceConfig) *Service {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.Audit == nil {
		cfg.Audit = LogAuditSink{}
	}
	return &Service{
		gw:         gw,
		pager:      NewPager(gw, cfg.DefaultPageSize),
		locator:    NewLocator(gw),
		audit:      cfg.Audit,
		bcryptCost: cfg.BcryptCost,
	}
}

// Ping verifies the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.gw.Ping(ctx); err != nil {
		return queryErr("ping", err)
	}
	return nil
}

// Entity returns the registered entity with the given name.
func (s *Service) Entity(name string) (*Entity, error) {
	e, ok := Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntity, name)
	}
	return e, nil
}

// keyValue converts a single recid for e.
func keyValue(e *Entity, recid string) (any, error) {
	key := e.KeyField()
	v, err := ConvertValue(key, recid)
	if err != nil {
		return nil, invalid("recid", err.Error())
	}
	if v == nil {
		return nil, invalid("recid", "required field is empty")
	}
	return v, nil
}

// hash replaces a plaintext value with its bcrypt hash.
func (s *Service) hash(value string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(value), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}
