// Package access decides whether a caller may perform an operation on a resource.
package access

import (
	"fmt"

	"github.com/campusnotes/campusnotes-api/internal/common"
	"github.com/campusnotes/campusnotes-api/internal/model"
)

// Resource names a family of endpoints.
type Resource string

const (
	Notes        Resource = "notes"
	Assignments  Resource = "assignments"
	OldQuestions Resource = "old-questions"
	Blogs        Resource = "blogs"
	Users        Resource = "users"
	Auth         Resource = "auth"
)

// Op is the operation a request performs.
type Op string

const (
	OpList           Op = "list"
	OpRead           Op = "read"
	OpCreate         Op = "create"
	OpUpdate         Op = "update"
	OpDelete         Op = "delete"
	OpRegister       Op = "register"
	OpLogin          Op = "login"
	OpMe             Op = "me"
	OpChangePassword Op = "change-password"
	OpDeactivate     Op = "deactivate"
)

// Rule is the requirement attached to a (resource, op) pair.
type Rule int

const (
	Deny Rule = iota
	Public
	Authenticated
	SelfOrAdmin
	AdminOnly
)

func (r Rule) String() string {
	switch r {
	case Public:
		return "public"
	case Authenticated:
		return "authenticated"
	case SelfOrAdmin:
		return "self-or-admin"
	case AdminOnly:
		return "admin-only"
	default:
		return "deny"
	}
}

// Caller is the verified identity of a request. A nil *Caller is anonymous.
type Caller struct {
	UserID string
	Email  string
	Role   string
}

func (c *Caller) IsAdmin() bool {
	return c != nil && c.Role == model.RoleAdmin
}

type key struct {
	resource Resource
	op       Op
}

// Policy is an immutable rule table.
type Policy struct {
	rules map[key]Rule
}

type Option func(*Policy)

// WithProfileOwnership makes profile mutations require the caller to be the
// target user or an admin instead of any authenticated caller.
func WithProfileOwnership(enforce bool) Option {
	return func(p *Policy) {
		rule := Authenticated
		if enforce {
			rule = SelfOrAdmin
		}
		for _, op := range []Op{OpUpdate, OpChangePassword, OpDeactivate} {
			p.rules[key{Users, op}] = rule
		}
	}
}

// ContentResources are the four public-read, admin-write collections.
var ContentResources = []Resource{Notes, Assignments, OldQuestions, Blogs}

func NewPolicy(opts ...Option) *Policy {
	p := &Policy{rules: make(map[key]Rule)}

	for _, res := range ContentResources {
		p.rules[key{res, OpList}] = Public
		p.rules[key{res, OpRead}] = Public
		p.rules[key{res, OpCreate}] = AdminOnly
		p.rules[key{res, OpUpdate}] = AdminOnly
		p.rules[key{res, OpDelete}] = AdminOnly
	}

	p.rules[key{Auth, OpRegister}] = Public
	p.rules[key{Auth, OpLogin}] = Public
	p.rules[key{Auth, OpMe}] = Authenticated
	p.rules[key{Users, OpRead}] = Public

	WithProfileOwnership(false)(p)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Rule returns the rule for the pair; unknown pairs are denied.
func (p *Policy) Rule(res Resource, op Op) Rule {
	return p.rules[key{res, op}]
}

// Authorize returns nil when caller may perform op on res. targetID is the
// user a SelfOrAdmin rule is checked against and is ignored otherwise.
func (p *Policy) Authorize(caller *Caller, res Resource, op Op, targetID string) error {
	rule := p.Rule(res, op)

	switch rule {
	case Public:
		return nil
	case Deny:
		return fmt.Errorf("%s %s: %w", op, res, common.ErrForbidden)
	}

	if caller == nil {
		return fmt.Errorf("%s %s: %w", op, res, common.ErrUnauthenticated)
	}

	switch rule {
	case Authenticated:
		return nil
	case SelfOrAdmin:
		if caller.UserID == targetID || caller.IsAdmin() {
			return nil
		}
	case AdminOnly:
		if caller.IsAdmin() {
			return nil
		}
	}
	return fmt.Errorf("%s %s requires %s: %w", op, res, rule, common.ErrForbidden)
}
